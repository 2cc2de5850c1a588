package damage

import "strings"

// HealingResult is the outcome of CalculateHealing
type HealingResult struct {
	Requested int
	// Effective is the change to apply. Negative when healing is inverted into damage.
	Effective int
	Overflow  int
	Blocked   bool
	Inverted  bool
}

// CalculateHealing clamps healing to the profile's missing hit points.
// Undead targets ignore positive-energy healing and take "cure" healing as damage.
func CalculateHealing(amount int, profile *DefenseProfile, source string) *HealingResult {
	amount = max(amount, 0)
	result := &HealingResult{Requested: amount}
	lowered := strings.ToLower(source)

	if profile.IsUndead() && strings.Contains(lowered, "positive energy") {
		result.Blocked = true
	}
	if profile.IsUndead() && strings.Contains(lowered, "cure") {
		result.Blocked = false
		result.Inverted = true
		result.Effective = -amount
		return result
	}
	if result.Blocked {
		return result
	}

	missing := 0
	if profile != nil {
		missing = max(profile.Health.Max-profile.Health.Current, 0)
	}
	result.Effective = min(amount, missing)
	result.Overflow = amount - result.Effective

	return result
}
