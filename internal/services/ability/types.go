// Package ability is the ability engine: it gates class features on uses and
// action economy, runs their effects and fires triggered features on combat events.
package ability

//go:generate mockgen -destination=mock/mock.go -package=mockability -source=types.go

import (
	"context"

	"github.com/KirkDiggler/combat-engine/internal/dice"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	"github.com/KirkDiggler/combat-engine/internal/events"
)

// Service defines the ability service interface
type Service interface {
	// InitializeCharacterFeatures builds the character's feature list for class and level
	// and fills every resource-gated feature to its max uses
	InitializeCharacterFeatures(characterID, className string, level int) ([]*features.Definition, error)

	// ActivateFeature runs a feature. Rejections come back as Success=false with a Reason.
	ActivateFeature(ctx context.Context, input *ActivateInput) (*ActivationResult, error)

	// ProcessTriggers activates every triggered feature listening for the event
	ProcessTriggers(ctx context.Context, input *TriggerInput) ([]*ActivationResult, error)

	// ProcessRest refills uses and returns the ids of the features it reset
	ProcessRest(characterID string, kind features.RestKind) ([]string, error)

	// ResetActionEconomy starts a new turn for the actor
	ResetActionEconomy(actorID string) bool

	// GetAvailableFeatures returns the character's features and whether each can be used now
	GetAvailableFeatures(characterID string) ([]*AvailableFeature, error)

	// UsesRemaining reports the uses left on a resource-gated feature
	UsesRemaining(characterID, featureID string) (int, bool)

	// DefenseProfile is the bridge profile plus whatever the character's features grant
	DefenseProfile(id string) (*damage.DefenseProfile, bool)

	// SubscribeTriggers wires combat events on bus to ProcessTriggers
	SubscribeTriggers(bus *events.Bus) []string
}

// Keys read from ActivateInput.Context and TriggerInput.Context
const (
	// ContextDamageType fills in damage effects that declare no type
	ContextDamageType = "damage_type"
	// ContextCritical doubles the dice of damage effects
	ContextCritical = "critical"
	// ContextSource replaces the feature name as the damage source text
	ContextSource = "source"
)

// ActivateInput contains data for activating a feature
type ActivateInput struct {
	CharacterID string
	FeatureID   string
	// ActorID is the entity spending the action; defaults to CharacterID
	ActorID   string
	TargetIDs []string
	Context   map[string]any
}

// TriggerInput describes a combat event that may fire triggered features
type TriggerInput struct {
	CharacterID string
	Event       string
	ActorID     string
	TargetIDs   []string
	Context     map[string]any
}

// ActivationResult contains the result of activating a feature
type ActivationResult struct {
	Success   bool
	FeatureID string
	// Reason says why an activation was rejected
	Reason  string
	Message string

	Effects []*EffectResult
	// ResourcesConsumed maps the feature id and the action slot spent to the amount used
	ResourcesConsumed map[string]int
	UsesRemaining     int
}

// EffectResult is the outcome of one effect of an activation
type EffectResult struct {
	Kind     features.EffectKind
	TargetID string
	Message  string

	Roll *dice.RollResult

	// damage
	DamageType damage.Type
	Resolution *damage.Resolution

	// healing
	Healing *damage.HealingResult

	// condition
	Condition conditions.ConditionType
	Removed   bool

	// Payload is set by modifier, advantage, extra attack, resource gain and custom effects
	Payload any
}

// ModifierPayload is a stat change the caller applies
type ModifierPayload struct {
	Stat     string
	Value    int
	Duration conditions.Duration
}

// AdvantagePayload grants advantage (or disadvantage) on a kind of roll
type AdvantagePayload struct {
	On           string
	Disadvantage bool
}

// ExtraAttackPayload is the number of extra attacks in the Attack action
type ExtraAttackPayload struct {
	Count int
}

// ResourceGainPayload reports uses given back to another feature
type ResourceGainPayload struct {
	FeatureID string
	Amount    int
	Restored  int
}

// RagePayload describes a rage that was entered
type RagePayload struct {
	Condition   conditions.ConditionType
	DamageBonus int
	Rounds      int
}

// SneakAttackPayload carries the extra damage roll
type SneakAttackPayload struct {
	Dice string
}

// ActionSurgePayload reports the slot handed back
type ActionSurgePayload struct {
	Restored string
}

// EchoPayload is returned by custom handlers the engine doesn't know
type EchoPayload struct {
	Handler string
}

// AvailableFeature represents a feature and whether it can be used
type AvailableFeature struct {
	Feature       *features.Definition
	UsesRemaining int
	MaxUses       int
	Available     bool
	Reason        string // Why it's not available (e.g., "No uses remaining", "Action not available")
}

// Rejection reasons
const (
	ReasonFeatureNotFound    = "Feature not found"
	ReasonFeaturePassive     = "Feature is passive"
	ReasonActorNotFound      = "Actor not found"
	ReasonNoUsesRemaining    = "No uses remaining"
	ReasonActionNotAvailable = "Action not available"
	ReasonTargetNotFound     = "Target not found"
)
