package events

import (
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
)

// Toolkit event names the engine publishes or listens for
const (
	TurnStart        = rpgevents.EventOnTurnStart
	TurnEnd          = rpgevents.EventOnTurnEnd
	ShortRest        = rpgevents.EventOnShortRest
	LongRest         = rpgevents.EventOnLongRest
	BeforeTakeDamage = rpgevents.EventBeforeTakeDamage
	AfterTakeDamage  = rpgevents.EventAfterTakeDamage
	ConditionApplied = rpgevents.EventOnConditionApplied
	ConditionRemoved = rpgevents.EventOnConditionRemoved
	AttackRoll       = rpgevents.EventOnAttackRoll
	DamageRoll       = rpgevents.EventOnDamageRoll
)

// Engine specific event names
const (
	AttackHit        = "combat.attack.hit"
	HealingReceived  = "combat.healing.received"
	AbilityActivated = "combat.ability.activated"
	EntityRemoved    = "combat.entity.removed"
)

// Context keys set on published events
const (
	KeyAmount        = "amount"
	KeyDamageType    = "damage_type"
	KeyConditionType = "condition_type"
	KeyConditionID   = "condition_id"
	KeySource        = "source"
	KeyFeatureID     = "feature_id"
	KeyCharacterID   = "character_id"
	KeyRemainingHP   = "remaining_hp"
)
