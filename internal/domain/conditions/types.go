package conditions

import (
	"time"

	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

// ConditionType is a status an entity can be under
type ConditionType string

// Standard 5e conditions
const (
	Blinded       ConditionType = "blinded"
	Charmed       ConditionType = "charmed"
	Deafened      ConditionType = "deafened"
	Frightened    ConditionType = "frightened"
	Grappled      ConditionType = "grappled"
	Incapacitated ConditionType = "incapacitated"
	Invisible     ConditionType = "invisible"
	Paralyzed     ConditionType = "paralyzed"
	Petrified     ConditionType = "petrified"
	Poisoned      ConditionType = "poisoned"
	Prone         ConditionType = "prone"
	Restrained    ConditionType = "restrained"
	Stunned       ConditionType = "stunned"
	Unconscious   ConditionType = "unconscious"
	Exhaustion    ConditionType = "exhaustion" // levels 1-6
)

// Feature driven statuses. The damage resolver keys off the last three.
const (
	Concentration    ConditionType = "concentration"
	Dodging          ConditionType = "dodging"
	Rage             ConditionType = "rage"
	RageBear         ConditionType = damage.ConditionRageBear
	HeavyArmorMaster ConditionType = damage.ConditionHeavyArmorMaster
	UncannyDodge     ConditionType = damage.ConditionUncannyDodge
)

// DurationType defines how long a condition lasts
type DurationType string

const (
	DurationRounds        DurationType = "rounds"
	DurationTurns         DurationType = "turns"
	DurationUntilRest     DurationType = "until_rest"
	DurationUntilLongRest DurationType = "until_long_rest"
	DurationPermanent     DurationType = "permanent"
	DurationUntilDamaged  DurationType = "until_damaged"
	DurationEndOfNextTurn DurationType = "end_next_turn"
)

// Duration pairs a duration type with a count for rounds and turns
type Duration struct {
	Type  DurationType `json:"type" yaml:"type"`
	Value int          `json:"value,omitempty" yaml:"value,omitempty"`
}

// Permanent lasts until something removes it
var Permanent = Duration{Type: DurationPermanent}

// Rounds lasts n rounds
func Rounds(n int) Duration { return Duration{Type: DurationRounds, Value: n} }

// Condition is one active status on an entity
type Condition struct {
	ID        string        `json:"id"`
	Type      ConditionType `json:"type"`
	Source    string        `json:"source"`
	Duration  Duration      `json:"duration"`
	Remaining int           `json:"remaining"`
	Level     int           `json:"level,omitempty"`
	AppliedAt time.Time     `json:"applied_at"`
}

// Effect is the mechanical summary of a set of conditions
type Effect struct {
	AttackAdvantage     bool
	AttackDisadvantage  bool
	DefenseAdvantage    bool
	DefenseDisadvantage bool

	CantMove  bool
	CantAct   bool
	CantReact bool

	// Resistances granted while the condition holds (petrified)
	Resistances []damage.Resistance
}

var standardEffects = map[ConditionType]Effect{
	Blinded:       {AttackDisadvantage: true, DefenseAdvantage: true},
	Frightened:    {AttackDisadvantage: true},
	Grappled:      {CantMove: true},
	Incapacitated: {CantAct: true, CantReact: true},
	Invisible:     {AttackAdvantage: true, DefenseDisadvantage: true},
	Paralyzed:     {CantAct: true, CantReact: true, CantMove: true, DefenseAdvantage: true},
	Petrified: {
		CantAct: true, CantReact: true, CantMove: true, DefenseAdvantage: true,
		Resistances: []damage.Resistance{
			{Match: damage.MatchAll, Effect: damage.EffectResistance, Label: "petrified"},
			{Match: string(damage.TypePoison), Effect: damage.EffectImmunity, Label: "petrified"},
		},
	},
	Poisoned:    {AttackDisadvantage: true},
	Prone:       {AttackDisadvantage: true},
	Restrained:  {CantMove: true, AttackDisadvantage: true, DefenseAdvantage: true},
	Stunned:     {CantAct: true, CantReact: true, CantMove: true, DefenseAdvantage: true},
	Unconscious: {CantAct: true, CantReact: true, CantMove: true, DefenseAdvantage: true},
	Dodging:     {DefenseDisadvantage: true},
}

// StandardEffect returns the effect of a single condition type; unknown types have none
func StandardEffect(t ConditionType) Effect {
	return standardEffects[t]
}

// CombineEffects merges the effects of several condition types
func CombineEffects(types []ConditionType) Effect {
	var combined Effect
	for _, t := range types {
		e := StandardEffect(t)
		combined.AttackAdvantage = combined.AttackAdvantage || e.AttackAdvantage
		combined.AttackDisadvantage = combined.AttackDisadvantage || e.AttackDisadvantage
		combined.DefenseAdvantage = combined.DefenseAdvantage || e.DefenseAdvantage
		combined.DefenseDisadvantage = combined.DefenseDisadvantage || e.DefenseDisadvantage
		combined.CantMove = combined.CantMove || e.CantMove
		combined.CantAct = combined.CantAct || e.CantAct
		combined.CantReact = combined.CantReact || e.CantReact
		combined.Resistances = append(combined.Resistances, e.Resistances...)
	}
	return combined
}
