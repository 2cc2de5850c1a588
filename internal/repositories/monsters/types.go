// Package monsters stores monster templates that encounters instantiate.
package monsters

import (
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

// Monster is a template; the bridge creates independent instances from it
type Monster struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	CreatureType string `yaml:"type" json:"type"`
	ArmorClass   int    `yaml:"armor_class" json:"armor_class"`

	// HitPoints wins over HitDice when set
	HitPoints int    `yaml:"hit_points" json:"hit_points"`
	HitDice   string `yaml:"hit_dice" json:"hit_dice"`

	AbilityScores map[combat.Ability]int `yaml:"ability_scores" json:"ability_scores"`
	Speed         int                    `yaml:"speed" json:"speed"`

	// SRD phrases such as "fire" or "bludgeoning, piercing, and slashing from nonmagical attacks"
	DamageImmunities      []string `yaml:"damage_immunities" json:"damage_immunities"`
	DamageResistances     []string `yaml:"damage_resistances" json:"damage_resistances"`
	DamageVulnerabilities []string `yaml:"damage_vulnerabilities" json:"damage_vulnerabilities"`
}

// MaxHitPoints is the numeric hit points, else the leading number of the
// hit dice formula ("4d8+4" gives 4), else 1.
func (m *Monster) MaxHitPoints() int {
	if m.HitPoints > 0 {
		return m.HitPoints
	}
	if n, ok := leadingInt(m.HitDice); ok && n > 0 {
		return n
	}
	return 1
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// Resistances converts the SRD phrases into resolver entries
func (m *Monster) Resistances() []damage.Resistance {
	var out []damage.Resistance
	out = append(out, phrasesToResistances(m.DamageImmunities, damage.EffectImmunity)...)
	out = append(out, phrasesToResistances(m.DamageResistances, damage.EffectResistance)...)
	out = append(out, phrasesToResistances(m.DamageVulnerabilities, damage.EffectVulnerability)...)
	return out
}

// Clone copies the slices and map
func (m *Monster) Clone() *Monster {
	if m == nil {
		return nil
	}
	out := *m
	if m.AbilityScores != nil {
		out.AbilityScores = make(map[combat.Ability]int, len(m.AbilityScores))
		for k, v := range m.AbilityScores {
			out.AbilityScores[k] = v
		}
	}
	out.DamageImmunities = append([]string(nil), m.DamageImmunities...)
	out.DamageResistances = append([]string(nil), m.DamageResistances...)
	out.DamageVulnerabilities = append([]string(nil), m.DamageVulnerabilities...)
	return &out
}

func phrasesToResistances(phrases []string, effect damage.Effect) []damage.Resistance {
	var out []damage.Resistance
	for _, phrase := range phrases {
		p := strings.ToLower(phrase)

		if strings.Contains(p, "nonmagical") {
			out = append(out, damage.Resistance{
				Match:  damage.MatchNonmagicalPhysical,
				Effect: effect,
				Label:  phrase,
			})
			continue
		}

		matched := false
		for _, t := range damage.AllTypes {
			if strings.Contains(p, string(t)) {
				out = append(out, damage.Resistance{Match: string(t), Effect: effect, Label: phrase})
				matched = true
			}
		}
		if !matched {
			log.Printf("[MONSTERS] ignoring unrecognized damage phrase %q", phrase)
		}
	}
	return out
}
