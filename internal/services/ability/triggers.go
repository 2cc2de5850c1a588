package ability

import (
	"context"
	"log"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/events"
)

// Subscriptions run after the bridge's own bookkeeping
const triggerPriority = 80

type pendingTrigger struct {
	def     *features.Definition
	trigger features.Trigger
}

func (s *service) ProcessTriggers(ctx context.Context, input *TriggerInput) ([]*ActivationResult, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.tracer.Start(ctx, "ability.ProcessTriggers", trace.WithAttributes(
		attribute.String("character.id", input.CharacterID),
		attribute.String("trigger.event", input.Event),
	))
	defer span.End()

	actorID := input.ActorID
	if actorID == "" {
		actorID = input.CharacterID
	}

	s.mu.RLock()
	cf, ok := s.characters[input.CharacterID]
	var candidates []pendingTrigger
	if ok {
		for _, def := range cf.defs {
			if def.Activation != features.ActivationTriggered {
				continue
			}
			// one activation per feature per event
			if triggers := def.TriggersOn(input.Event); len(triggers) > 0 {
				candidates = append(candidates, pendingTrigger{def: def, trigger: triggers[0]})
			}
		}
	}
	s.mu.RUnlock()

	if !ok {
		return nil, dnderr.NotFoundf("no features initialized for character '%s'", input.CharacterID).
			WithMeta("character_id", input.CharacterID)
	}

	var results []*ActivationResult
	for _, c := range candidates {
		// health may have changed with the previous activation
		actor, found := s.bridge.GetEntityData(actorID)
		if !found {
			return results, dnderr.NotFoundf("actor '%s' not found", actorID).WithMeta("actor_id", actorID)
		}
		if !predicateHolds(c.trigger.Condition, actor.Health) {
			continue
		}
		if c.trigger.OncePerTurn && !s.claimTurnUse(actor.Ref, c.def.ID) {
			continue
		}

		result, err := s.activate(ctx, &ActivateInput{
			CharacterID: input.CharacterID,
			FeatureID:   c.def.ID,
			ActorID:     actor.Ref,
			TargetIDs:   input.TargetIDs,
			Context:     input.Context,
		})
		if err != nil {
			if c.trigger.OncePerTurn {
				s.releaseTurnUse(actor.Ref, c.def.ID)
			}
			span.RecordError(err)
			return results, err
		}
		if !result.Success && c.trigger.OncePerTurn {
			s.releaseTurnUse(actor.Ref, c.def.ID)
		}

		results = append(results, result)
	}

	span.SetAttributes(attribute.Int("trigger.activations", len(results)))
	return results, nil
}

func predicateHolds(condition string, health combat.Health) bool {
	switch condition {
	case features.PredicateBelowHalfHP:
		return health.BelowHalf()
	case features.PredicateBloodied:
		return health.Bloodied()
	default:
		return true
	}
}

// claimTurnUse marks a once-per-turn feature as used; false if it already was
func (s *service) claimTurnUse(actorRef, featureID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	fired, ok := s.firedThisTurn[actorRef]
	if !ok {
		fired = make(map[string]bool)
		s.firedThisTurn[actorRef] = fired
	}
	if fired[featureID] {
		return false
	}
	fired[featureID] = true
	return true
}

func (s *service) releaseTurnUse(actorRef, featureID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.firedThisTurn[actorRef], featureID)
}

func (s *service) SubscribeTriggers(bus *events.Bus) []string {
	if bus == nil {
		return nil
	}

	return []string{
		bus.Subscribe(events.AfterTakeDamage, triggerPriority, s.triggerHandler(features.TriggerOnDamageTaken)),
		bus.Subscribe(events.TurnStart, triggerPriority, s.triggerHandler(features.TriggerTurnStart)),
		bus.Subscribe(events.AttackHit, triggerPriority, s.triggerHandler(features.TriggerOnHit)),
	}
}

func (s *service) triggerHandler(trigger string) events.Handler {
	return func(ctx context.Context, e rpgevents.Event) error {
		input := triggerInputFromEvent(trigger, e)
		if input == nil {
			return nil
		}

		s.mu.RLock()
		_, tracked := s.characters[input.CharacterID]
		s.mu.RUnlock()
		if !tracked {
			return nil
		}

		results, err := s.ProcessTriggers(ctx, input)
		if err != nil {
			log.Printf("[ABILITY] %s triggers for %s failed: %v", trigger, input.CharacterID, err)
			return nil
		}
		for _, r := range results {
			if r.Success {
				log.Printf("[ABILITY] %s fired %s for %s", trigger, r.FeatureID, input.CharacterID)
			}
		}
		return nil
	}
}

// triggerInputFromEvent picks the character the event is about. For hits that
// is the attacker; otherwise the entity the event happened to.
func triggerInputFromEvent(trigger string, e rpgevents.Event) *TriggerInput {
	input := &TriggerInput{Event: trigger, Context: make(map[string]any)}

	if damageType, ok := events.StringValue(e, events.KeyDamageType); ok {
		input.Context[ContextDamageType] = damageType
	}
	if raw, ok := e.Context().Get(ContextCritical); ok {
		if crit, isBool := raw.(bool); isBool {
			input.Context[ContextCritical] = crit
		}
	}

	switch trigger {
	case features.TriggerOnHit:
		source, target := e.Source(), e.Target()
		if source == nil || source.GetType() != string(combat.KindCharacter) {
			return nil
		}
		input.CharacterID = source.GetID()
		if target != nil {
			input.TargetIDs = []string{target.GetID()}
		}
	default:
		target := e.Target()
		if target == nil || target.GetType() != string(combat.KindCharacter) {
			return nil
		}
		input.CharacterID = target.GetID()
	}

	return input
}
