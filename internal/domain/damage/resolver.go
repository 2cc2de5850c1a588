package damage

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers carry state, so each call builds its own
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// Matching entries apply strongest first, list order kept within one effect
var effectPrecedence = map[Effect]int{
	EffectImmunity:      0,
	EffectVulnerability: 1,
	EffectResistance:    2,
	EffectNumeric:       3,
}

// Matches reports whether the entry applies to inst given the profile's active conditions
func (r Resistance) Matches(inst Instance, profile *DefenseProfile) bool {
	switch strings.ToLower(r.Match) {
	case MatchAll:
	case MatchNonmagicalPhysical:
		if !inst.Type.IsPhysical() || strings.Contains(strings.ToLower(inst.Source), "magical") {
			return false
		}
	default:
		if Type(strings.ToLower(r.Match)) != inst.Type {
			return false
		}
	}

	if len(r.RequiredConditions) == 0 {
		return true
	}
	for _, condition := range r.RequiredConditions {
		if profile.HasCondition(condition) {
			return true
		}
	}
	return false
}

// Resolve turns raw damage instances into a final amount against profile.
// A nil profile resolves as an undefended target.
func Resolve(instances []Instance, profile *DefenseProfile) *Resolution {
	res := newResolution()

	for _, inst := range instances {
		amount := resolveInstance(inst, profile, res)
		res.Total += amount
		res.ByType[inst.Type] += amount
	}

	return res
}

// ResolveOne is Resolve for a single instance
func ResolveOne(inst Instance, profile *DefenseProfile) *Resolution {
	return Resolve([]Instance{inst}, profile)
}

func resolveInstance(inst Instance, profile *DefenseProfile, res *Resolution) int {
	amount := max(inst.Amount, 0)

	if !inst.IgnoresResistance {
		for _, entry := range matchingEntries(inst, profile) {
			amount = applyEntry(inst, entry, amount, res)
		}
	}

	amount = applySpecialConditions(inst, profile, amount, res)

	return max(amount, 0)
}

func matchingEntries(inst Instance, profile *DefenseProfile) []Resistance {
	if profile == nil {
		return nil
	}

	var matched []Resistance
	for _, entry := range profile.Resistances {
		if entry.Matches(inst, profile) {
			matched = append(matched, entry)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return effectPrecedence[matched[i].Effect] < effectPrecedence[matched[j].Effect]
	})
	return matched
}

func applyEntry(inst Instance, entry Resistance, amount int, res *Resolution) int {
	before := amount
	var kind ModificationKind

	switch entry.Effect {
	case EffectImmunity:
		amount = 0
		res.ImmunityBlocked[inst.Type] += before
		kind = ModImmunity
	case EffectVulnerability:
		amount = before * 2
		res.VulnerabilityAdded[inst.Type] += before
		kind = ModVulnerability
	case EffectResistance:
		amount = before / 2
		res.ResistanceApplied[inst.Type] += before - amount
		kind = ModResistance
	case EffectNumeric:
		if inst.Piercing {
			return amount
		}
		kind = ModReduction
		value := entry.Value
		if value < 0 {
			// Absorption converts the blocked amount into healing in some rulesets.
			// Here it reduces exactly like flat reduction and is reported separately.
			kind = ModAbsorption
			value = -value
		}
		amount = max(before-value, 0)
		res.ResistanceApplied[inst.Type] += before - amount
	default:
		return amount
	}

	res.Modifications = append(res.Modifications, newModification(inst.Type, kind, entrySource(entry, inst.Type, kind), before, amount))
	return amount
}

func applySpecialConditions(inst Instance, profile *DefenseProfile, amount int, res *Resolution) int {
	if profile.HasCondition(ConditionRageBear) && inst.Type != TypePsychic {
		before := amount
		amount = before / 2
		res.ResistanceApplied[inst.Type] += before - amount
		res.Modifications = append(res.Modifications, newModification(inst.Type, ModRageBear, "bear totem rage", before, amount))
	}

	if profile.HasCondition(ConditionHeavyArmorMaster) && inst.Type.IsPhysical() {
		before := amount
		amount = max(before-3, 0)
		res.ResistanceApplied[inst.Type] += before - amount
		res.Modifications = append(res.Modifications, newModification(inst.Type, ModHeavyArmorMaster, "heavy armor master", before, amount))
	}

	if profile.HasCondition(ConditionUncannyDodge) {
		before := amount
		amount = before / 2
		res.ResistanceApplied[inst.Type] += before - amount
		res.Modifications = append(res.Modifications, newModification(inst.Type, ModUncannyDodge, "uncanny dodge", before, amount))
	}

	return amount
}

func entrySource(entry Resistance, t Type, kind ModificationKind) string {
	if entry.Label != "" {
		return entry.Label
	}
	return fmt.Sprintf("%s %s", t, kind)
}

func newModification(t Type, kind ModificationKind, source string, before, after int) Modification {
	return Modification{
		DamageType:  t,
		Kind:        kind,
		Source:      source,
		Before:      before,
		After:       after,
		Description: fmt.Sprintf("%s: %d %s damage became %d", title(source), before, t, after),
	}
}
