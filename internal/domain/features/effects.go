package features

import (
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

// EffectKind discriminates the Effect variants
type EffectKind string

const (
	KindDamage       EffectKind = "damage"
	KindHealing      EffectKind = "healing"
	KindCondition    EffectKind = "condition"
	KindModifier     EffectKind = "modifier"
	KindAdvantage    EffectKind = "advantage"
	KindExtraAttack  EffectKind = "extra_attack"
	KindResourceGain EffectKind = "resource_gain"
	KindCustom       EffectKind = "custom"
)

// Target picks who an effect lands on
type Target string

const (
	TargetSelf    Target = "self"
	TargetTargets Target = "targets"
)

// Effect is a closed union; only this package declares variants
type Effect interface {
	Kind() EffectKind
	isEffect()
}

type DamageEffect struct {
	Dice string
	// Type may be empty; the activation context or bludgeoning fills it in
	Type   damage.Type
	Target Target
}

type HealingEffect struct {
	Dice   string
	Target Target
}

type ConditionEffect struct {
	Condition conditions.ConditionType
	Duration  conditions.Duration
	Remove    bool
	Target    Target
}

type ModifierEffect struct {
	Stat     string
	Value    int
	Duration conditions.Duration
}

type AdvantageEffect struct {
	On           string
	Disadvantage bool
}

type ExtraAttackEffect struct {
	Count int
}

// ResourceGainEffect restores uses of another feature of the same character
type ResourceGainEffect struct {
	FeatureID string
	Amount    int
}

type CustomEffect struct {
	Handler CustomHandler
	// Key is the handler name as written, kept for echoing unknown handlers
	Key string
}

func (DamageEffect) Kind() EffectKind       { return KindDamage }
func (HealingEffect) Kind() EffectKind      { return KindHealing }
func (ConditionEffect) Kind() EffectKind    { return KindCondition }
func (ModifierEffect) Kind() EffectKind     { return KindModifier }
func (AdvantageEffect) Kind() EffectKind    { return KindAdvantage }
func (ExtraAttackEffect) Kind() EffectKind  { return KindExtraAttack }
func (ResourceGainEffect) Kind() EffectKind { return KindResourceGain }
func (CustomEffect) Kind() EffectKind       { return KindCustom }

func (DamageEffect) isEffect()       {}
func (HealingEffect) isEffect()      {}
func (ConditionEffect) isEffect()    {}
func (ModifierEffect) isEffect()     {}
func (AdvantageEffect) isEffect()    {}
func (ExtraAttackEffect) isEffect()  {}
func (ResourceGainEffect) isEffect() {}
func (CustomEffect) isEffect()       {}
