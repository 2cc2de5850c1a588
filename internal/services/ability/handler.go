package ability

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/combat-engine/internal/dice"
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
)

const (
	featureTotemSpiritBear = "totem_spirit_bear"

	rageRounds = 10
)

// activation is everything the interpreter knows about one use of a feature
type activation struct {
	characterID string
	def         *features.Definition
	level       int
	bearTotem   bool

	actor   *combat.Snapshot
	targets []*combat.Snapshot
	context map[string]any

	// set by action surge; the commit hands the action back
	restoreAction bool
}

// plannedEffect is an effect with its dice rolled and its outcome computed.
// apply makes the change and runs only after the activation commits.
type plannedEffect struct {
	result *EffectResult
	apply  func(ctx context.Context)
}

func (a *activation) damageType() damage.Type {
	if raw, ok := a.context[ContextDamageType].(string); ok {
		if t, valid := damage.ParseType(raw); valid {
			return t
		}
	}
	if t, ok := a.context[ContextDamageType].(damage.Type); ok && t.IsValid() {
		return t
	}
	return damage.TypeBludgeoning
}

func (a *activation) critical() bool {
	crit, _ := a.context[ContextCritical].(bool)
	return crit
}

func (a *activation) source() string {
	if src, ok := a.context[ContextSource].(string); ok && src != "" {
		return src
	}
	return a.def.Name
}

// targetsFor picks who an effect lands on; "targets" falls back to the actor
func (a *activation) targetsFor(target features.Target) []*combat.Snapshot {
	if target == features.TargetTargets && len(a.targets) > 0 {
		return a.targets
	}
	return []*combat.Snapshot{a.actor}
}

// requiresTarget is true when the feature would otherwise hit its own user
func requiresTarget(def *features.Definition) bool {
	for _, effect := range def.Effects {
		switch e := effect.(type) {
		case features.DamageEffect:
			if e.Target == features.TargetTargets {
				return true
			}
		case features.CustomEffect:
			if e.Handler == features.CustomSneakAttack {
				return true
			}
		}
	}
	return false
}

func (s *service) plan(act *activation) ([]*plannedEffect, error) {
	var planned []*plannedEffect
	for _, effect := range act.def.Effects {
		steps, err := s.planEffect(act, effect)
		if err != nil {
			return nil, err
		}
		planned = append(planned, steps...)
	}
	return planned, nil
}

func (s *service) planEffect(act *activation, effect features.Effect) ([]*plannedEffect, error) {
	switch e := effect.(type) {
	case features.DamageEffect:
		return s.planDamage(act, e)
	case features.HealingEffect:
		return s.planHealing(act, e)
	case features.ConditionEffect:
		return s.planCondition(act, e), nil
	case features.ModifierEffect:
		return payloadOnly(act, features.KindModifier, &ModifierPayload{Stat: e.Stat, Value: e.Value, Duration: e.Duration},
			fmt.Sprintf("%+d %s", e.Value, e.Stat)), nil
	case features.AdvantageEffect:
		word := "advantage"
		if e.Disadvantage {
			word = "disadvantage"
		}
		return payloadOnly(act, features.KindAdvantage, &AdvantagePayload{On: e.On, Disadvantage: e.Disadvantage},
			fmt.Sprintf("%s on %s", word, e.On)), nil
	case features.ExtraAttackEffect:
		return payloadOnly(act, features.KindExtraAttack, &ExtraAttackPayload{Count: e.Count},
			fmt.Sprintf("%d extra attack(s)", e.Count)), nil
	case features.ResourceGainEffect:
		return s.planResourceGain(act, e), nil
	case features.CustomEffect:
		return s.planCustom(act, e)
	default:
		return nil, fmt.Errorf("unhandled effect kind %s", effect.Kind())
	}
}

func payloadOnly(act *activation, kind features.EffectKind, payload any, message string) []*plannedEffect {
	return []*plannedEffect{{
		result: &EffectResult{
			Kind:     kind,
			TargetID: act.actor.Ref,
			Message:  message,
			Payload:  payload,
		},
	}}
}

// roll never goes negative. An empty expression rolls nothing.
func (s *service) roll(act *activation, expression string) (*dice.RollResult, error) {
	if expression == "" {
		log.Printf("[ABILITY] %s has an effect without dice, treating it as 0", act.def.ID)
		return &dice.RollResult{}, nil
	}
	return dice.RollDamage(s.diceRoller, expression)
}

func (s *service) planDamage(act *activation, e features.DamageEffect) ([]*plannedEffect, error) {
	damageType := e.Type
	if damageType == "" {
		damageType = act.damageType()
	}

	roll, err := s.roll(act, e.Dice)
	if err != nil {
		return nil, err
	}

	return s.planDamageInstance(act, act.targetsFor(e.Target), features.KindDamage, roll, damageType), nil
}

// planDamageInstance resolves one roll against every target's defense profile
func (s *service) planDamageInstance(act *activation, targets []*combat.Snapshot, kind features.EffectKind, roll *dice.RollResult, damageType damage.Type) []*plannedEffect {
	inst := damage.Instance{
		Amount:     roll.Total,
		Type:       damageType,
		Source:     act.source(),
		DiceAmount: roll.RawTotal,
		Modifier:   roll.Bonus,
	}
	if act.critical() && roll.Count > 0 {
		inst = damage.CriticalInstance(inst, 2)
	}

	planned := make([]*plannedEffect, 0, len(targets))
	for _, target := range targets {
		profile, ok := s.DefenseProfile(target.Ref)
		if !ok {
			profile = &damage.DefenseProfile{Health: target.Health.Snapshot()}
		}
		res := damage.Resolve([]damage.Instance{inst}, profile)

		ref := target.Ref
		planned = append(planned, &plannedEffect{
			result: &EffectResult{
				Kind:       kind,
				TargetID:   ref,
				Roll:       roll,
				DamageType: damageType,
				Resolution: res,
				Message:    fmt.Sprintf("%d %s damage to %s", res.Total, damageType, target.Name),
			},
			apply: func(ctx context.Context) {
				if res.Total <= 0 {
					return
				}
				if !s.bridge.ApplyDamage(ctx, ref, res.Total, damageType) {
					log.Printf("[ABILITY] %s left before %s damage landed", ref, act.def.ID)
				}
			},
		})
	}
	return planned
}

func (s *service) planHealing(act *activation, e features.HealingEffect) ([]*plannedEffect, error) {
	roll, err := s.roll(act, e.Dice)
	if err != nil {
		return nil, err
	}

	targets := act.targetsFor(e.Target)
	planned := make([]*plannedEffect, 0, len(targets))
	for _, target := range targets {
		profile, ok := s.DefenseProfile(target.Ref)
		if !ok {
			profile = &damage.DefenseProfile{Health: target.Health.Snapshot()}
		}
		healing := damage.CalculateHealing(roll.Total, profile, act.source())

		message := fmt.Sprintf("%s regains %d HP", target.Name, healing.Effective)
		switch {
		case healing.Blocked:
			message = fmt.Sprintf("%s cannot be healed by %s", target.Name, act.def.Name)
		case healing.Inverted:
			message = fmt.Sprintf("%s takes %d radiant damage from %s", target.Name, -healing.Effective, act.def.Name)
		}

		ref := target.Ref
		planned = append(planned, &plannedEffect{
			result: &EffectResult{
				Kind:     features.KindHealing,
				TargetID: ref,
				Roll:     roll,
				Healing:  healing,
				Message:  message,
			},
			apply: func(ctx context.Context) {
				switch {
				case healing.Effective > 0:
					s.bridge.ApplyHealing(ctx, ref, healing.Effective)
				case healing.Effective < 0:
					s.bridge.ApplyDamage(ctx, ref, -healing.Effective, damage.TypeRadiant)
				}
			},
		})
	}
	return planned, nil
}

func (s *service) planCondition(act *activation, e features.ConditionEffect) []*plannedEffect {
	duration := e.Duration
	if duration.Type == "" {
		duration = conditions.Permanent
	}

	targets := act.targetsFor(e.Target)
	planned := make([]*plannedEffect, 0, len(targets))
	for _, target := range targets {
		ref := target.Ref
		message := fmt.Sprintf("%s gains %s", target.Name, e.Condition)
		if e.Remove {
			message = fmt.Sprintf("%s loses %s", target.Name, e.Condition)
		}

		planned = append(planned, &plannedEffect{
			result: &EffectResult{
				Kind:      features.KindCondition,
				TargetID:  ref,
				Condition: e.Condition,
				Removed:   e.Remove,
				Message:   message,
			},
			apply: func(ctx context.Context) {
				if e.Remove {
					s.bridge.RemoveCondition(ctx, ref, e.Condition)
					return
				}
				if !s.bridge.ApplyCondition(ctx, ref, e.Condition, act.def.ID, duration) {
					log.Printf("[ABILITY] failed to apply %s to %s", e.Condition, ref)
				}
			},
		})
	}
	return planned
}

func (s *service) planResourceGain(act *activation, e features.ResourceGainEffect) []*plannedEffect {
	payload := &ResourceGainPayload{FeatureID: e.FeatureID, Amount: e.Amount}
	result := &EffectResult{
		Kind:     features.KindResourceGain,
		TargetID: act.actor.Ref,
		Payload:  payload,
	}

	return []*plannedEffect{{
		result: result,
		apply: func(context.Context) {
			s.mu.Lock()
			if cf, ok := s.characters[act.characterID]; ok {
				payload.Restored = cf.restore(e.FeatureID, e.Amount)
			}
			s.mu.Unlock()
			result.Message = fmt.Sprintf("%d use(s) of %s restored", payload.Restored, e.FeatureID)
		},
	}}
}

// planCustom dispatches the built-in handlers. Unknown keys echo back and change nothing.
func (s *service) planCustom(act *activation, e features.CustomEffect) ([]*plannedEffect, error) {
	switch e.Handler {
	case features.CustomRage:
		return s.planRage(act), nil
	case features.CustomSneakAttack:
		return s.planSneakAttack(act)
	case features.CustomActionSurge:
		act.restoreAction = true
		return payloadOnly(act, features.KindCustom, &ActionSurgePayload{Restored: string(combat.CostAction)},
			"takes an additional action"), nil
	case features.CustomUnknown:
		return payloadOnly(act, features.KindCustom, &EchoPayload{Handler: e.Key},
			fmt.Sprintf("%s has no effect", e.Key)), nil
	default:
		return nil, fmt.Errorf("unhandled custom handler %s", e.Handler)
	}
}

// planRage enters rage. A bear totem barbarian gets rage_bear instead, which
// already halves every damage type but psychic.
func (s *service) planRage(act *activation) []*plannedEffect {
	cond := conditions.Rage
	if act.bearTotem {
		cond = conditions.RageBear
	}
	payload := &RagePayload{
		Condition:   cond,
		DamageBonus: rageDamageBonus(act.level),
		Rounds:      rageRounds,
	}

	ref := act.actor.Ref
	return []*plannedEffect{{
		result: &EffectResult{
			Kind:      features.KindCustom,
			TargetID:  ref,
			Condition: cond,
			Payload:   payload,
			Message:   fmt.Sprintf("%s enters a rage (+%d damage)", act.actor.Name, payload.DamageBonus),
		},
		apply: func(ctx context.Context) {
			if !s.bridge.ApplyCondition(ctx, ref, cond, act.def.ID, conditions.Rounds(rageRounds)) {
				log.Printf("[ABILITY] failed to apply %s to %s", cond, ref)
			}
		},
	}}
}

func rageDamageBonus(level int) int {
	switch {
	case level >= 16:
		return 4
	case level >= 9:
		return 3
	default:
		return 2
	}
}

// planSneakAttack rolls ceil(level/2)d6 against the first target
func (s *service) planSneakAttack(act *activation) ([]*plannedEffect, error) {
	expression := fmt.Sprintf("%dd6", sneakAttackDice(act.level))
	roll, err := s.roll(act, expression)
	if err != nil {
		return nil, err
	}

	planned := s.planDamageInstance(act, act.targets[:1], features.KindCustom, roll, act.damageType())
	for _, p := range planned {
		p.result.Payload = &SneakAttackPayload{Dice: expression}
		p.result.Message = "sneak attack: " + p.result.Message
	}
	return planned, nil
}

func sneakAttackDice(level int) int {
	return max((level+1)/2, 1)
}
