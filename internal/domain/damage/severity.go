package damage

// Severity buckets a hit relative to the target's maximum hit points
type Severity string

const (
	SeverityMinimal  Severity = "minimal"
	SeverityLight    Severity = "light"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityHeavy    Severity = "heavy"
	SeverityMassive  Severity = "massive"
)

// ClassifySeverity labels amount as a percentage of maxHP:
// <10 minimal, <25 light, <50 moderate, <75 heavy, <100 severe, otherwise massive
func ClassifySeverity(amount, maxHP int) Severity {
	if amount <= 0 {
		return SeverityMinimal
	}
	if maxHP <= 0 {
		return SeverityMassive
	}

	percent := amount * 100 / maxHP
	switch {
	case percent < 10:
		return SeverityMinimal
	case percent < 25:
		return SeverityLight
	case percent < 50:
		return SeverityModerate
	case percent < 75:
		return SeverityHeavy
	case percent < 100:
		return SeveritySevere
	default:
		return SeverityMassive
	}
}

// Label is the display form ("Heavy")
func (s Severity) Label() string {
	return title(string(s))
}
