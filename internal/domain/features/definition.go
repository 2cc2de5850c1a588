// Package features is the immutable catalog of class abilities. Use counters do
// not live here; see the ability service's resource table.
package features

import (
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

// Activation is how an ability comes into play
type Activation string

const (
	ActivationPassive   Activation = "passive"
	ActivationActive    Activation = "active"
	ActivationReaction  Activation = "reaction"
	ActivationTriggered Activation = "triggered"
)

// RestKind is what refills a resource
type RestKind string

const (
	ShortRest RestKind = "short_rest"
	LongRest  RestKind = "long_rest"
)

// ResourceSpec gates an ability behind a number of uses
type ResourceSpec struct {
	Max     int
	ResetOn RestKind
}

// Trigger events understood by the ability service
const (
	TriggerOnHit         = "on_hit"
	TriggerOnDamageTaken = "on_damage_taken"
	TriggerTurnStart     = "turn_start"
)

// Trigger predicates. Anything else always holds.
const (
	PredicateBelowHalfHP = "below_half_hp"
	PredicateBloodied    = "bloodied"
)

// Trigger fires a triggered ability when Event happens and Condition holds
type Trigger struct {
	Event       string
	Condition   string
	OncePerTurn bool
}

// Definition describes one ability. Treat it as read-only.
type Definition struct {
	ID          string
	Name        string
	Description string
	Class       string
	MinLevel    int

	Activation Activation
	ActionCost combat.ActionCost
	Resource   *ResourceSpec
	Triggers   []Trigger
	Effects    []Effect

	// Passive grants folded into the owner's defense profile
	GrantsResistances []damage.Resistance
	GrantsConditions  []conditions.ConditionType
}

// IsResourceGated reports whether the ability has limited uses
func (d *Definition) IsResourceGated() bool {
	return d.Resource != nil && d.Resource.Max > 0
}

// TriggersOn returns the triggers listening for event
func (d *Definition) TriggersOn(event string) []Trigger {
	var out []Trigger
	for _, t := range d.Triggers {
		if t.Event == event {
			out = append(out, t)
		}
	}
	return out
}
