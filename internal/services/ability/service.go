package ability

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/combat-engine/internal/dice"
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/services/bridge"
)

const tracerName = "github.com/KirkDiggler/combat-engine/internal/services/ability"

// ServiceConfig holds configuration for the ability service
type ServiceConfig struct {
	Bridge     bridge.Service
	Catalog    *features.Catalog
	DiceRoller dice.Roller
	EventBus   *events.Bus
	Tracer     trace.Tracer
}

type service struct {
	bridge     bridge.Service
	catalog    *features.Catalog
	diceRoller dice.Roller
	eventBus   *events.Bus
	tracer     trace.Tracer

	mu         sync.RWMutex
	characters map[string]*characterFeatures
	// once-per-turn features that already fired, by actor ref
	firedThisTurn map[string]map[string]bool
}

// NewService creates a new ability service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ability service config cannot be nil")
	}
	if cfg.Bridge == nil {
		panic("bridge is required")
	}

	svc := &service{
		bridge:        cfg.Bridge,
		catalog:       cfg.Catalog,
		diceRoller:    cfg.DiceRoller,
		eventBus:      cfg.EventBus,
		tracer:        cfg.Tracer,
		characters:    make(map[string]*characterFeatures),
		firedThisTurn: make(map[string]map[string]bool),
	}

	if svc.catalog == nil {
		svc.catalog = features.Default()
	}
	if svc.diceRoller == nil {
		svc.diceRoller = dice.NewRandomRoller()
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer(tracerName)
	}

	return svc
}

func (s *service) InitializeCharacterFeatures(characterID, className string, level int) ([]*features.Definition, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	if level < 1 {
		return nil, dnderr.InvalidArgumentf("level must be at least 1, got %d", level)
	}
	if !s.catalog.HasClass(className) {
		return nil, dnderr.NotFoundf("no feature table for class '%s'", className).
			WithMeta("class", className)
	}

	defs := s.catalog.ForClass(className, level)

	s.mu.Lock()
	s.characters[characterID] = newCharacterFeatures(strings.ToLower(className), level, defs)
	s.mu.Unlock()

	log.Printf("[ABILITY] initialized %d features for %s (%s %d)", len(defs), characterID, className, level)

	out := make([]*features.Definition, len(defs))
	copy(out, defs)
	return out, nil
}

func (s *service) ActivateFeature(ctx context.Context, input *ActivateInput) (*ActivationResult, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.tracer.Start(ctx, "ability.ActivateFeature", trace.WithAttributes(
		attribute.String("character.id", input.CharacterID),
		attribute.String("feature.id", input.FeatureID),
	))
	defer span.End()

	result, err := s.activate(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("activation.success", result.Success))
	if !result.Success {
		span.SetAttributes(attribute.String("activation.reason", result.Reason))
	}
	return result, nil
}

// activate validates, plans every effect and only then commits. A rejection or
// planning error leaves uses, action economy and entities untouched.
func (s *service) activate(ctx context.Context, input *ActivateInput) (*ActivationResult, error) {
	actorID := input.ActorID
	if actorID == "" {
		actorID = input.CharacterID
	}

	s.mu.RLock()
	cf, ok := s.characters[input.CharacterID]
	var def *features.Definition
	if ok {
		def, ok = cf.find(input.FeatureID)
	}
	var (
		uses      int
		level     int
		bearTotem bool
	)
	if ok {
		uses = cf.remaining(def)
		level = cf.level
		bearTotem = cf.has(featureTotemSpiritBear)
	}
	s.mu.RUnlock()

	if !ok {
		return rejected(input.FeatureID, ReasonFeatureNotFound, 0), nil
	}
	if def.Activation == features.ActivationPassive {
		return rejected(def.ID, ReasonFeaturePassive, uses), nil
	}

	actor, ok := s.bridge.GetEntityData(actorID)
	if !ok {
		return rejected(def.ID, ReasonActorNotFound, uses), nil
	}
	if uses == 0 {
		return rejected(def.ID, ReasonNoUsesRemaining, uses), nil
	}
	if !actionAvailable(actor, def) {
		return rejected(def.ID, ReasonActionNotAvailable, uses), nil
	}

	targets := make([]*combat.Snapshot, 0, len(input.TargetIDs))
	for _, id := range input.TargetIDs {
		target, found := s.bridge.GetEntityData(id)
		if !found {
			return rejected(def.ID, ReasonTargetNotFound, uses), nil
		}
		targets = append(targets, target)
	}
	if len(targets) == 0 && requiresTarget(def) {
		return rejected(def.ID, ReasonTargetNotFound, uses), nil
	}

	act := &activation{
		characterID: input.CharacterID,
		def:         def,
		level:       level,
		bearTotem:   bearTotem,
		actor:       actor,
		targets:     targets,
		context:     input.Context,
	}

	planned, err := s.plan(act)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to activate %s", def.ID)
	}

	// commit: uses and the action slot first, under the lock
	s.mu.Lock()
	cf, ok = s.characters[input.CharacterID]
	if !ok || !cf.has(def.ID) {
		s.mu.Unlock()
		return rejected(def.ID, ReasonFeatureNotFound, 0), nil
	}
	state, ok := s.bridge.CombatState(actor.Ref)
	if !ok {
		s.mu.Unlock()
		return rejected(def.ID, ReasonActorNotFound, uses), nil
	}
	if !state.Spend(def.ActionCost) {
		s.mu.Unlock()
		return rejected(def.ID, ReasonActionNotAvailable, uses), nil
	}
	if !cf.consume(def) {
		s.mu.Unlock()
		return rejected(def.ID, ReasonNoUsesRemaining, 0), nil
	}
	if act.restoreAction {
		state.Restore(combat.CostAction)
	}
	s.bridge.SetCombatState(actor.Ref, state)
	remaining := cf.remaining(def)
	s.mu.Unlock()

	// then the effects, outside the lock so bus subscribers can call back in
	result := &ActivationResult{
		Success:           true,
		FeatureID:         def.ID,
		ResourcesConsumed: make(map[string]int),
		UsesRemaining:     remaining,
	}
	messages := make([]string, 0, len(planned))
	for _, p := range planned {
		if p.apply != nil {
			p.apply(ctx)
		}
		result.Effects = append(result.Effects, p.result)
		if p.result.Message != "" {
			messages = append(messages, p.result.Message)
		}
	}

	if def.IsResourceGated() {
		result.ResourcesConsumed[def.ID] = 1
	}
	switch def.ActionCost {
	case combat.CostAction, combat.CostBonusAction, combat.CostReaction:
		result.ResourcesConsumed[string(def.ActionCost)] = 1
	}

	result.Message = fmt.Sprintf("%s used %s", actor.Name, def.Name)
	if len(messages) > 0 {
		result.Message += ": " + strings.Join(messages, "; ")
	}

	log.Printf("[ABILITY] %s used %s (uses left %d)", actor.Ref, def.ID, remaining)
	s.publish(ctx, events.AbilityActivated, actor, map[string]any{
		events.KeyFeatureID:   def.ID,
		events.KeyCharacterID: input.CharacterID,
	})

	return result, nil
}

func rejected(featureID, reason string, uses int) *ActivationResult {
	return &ActivationResult{
		Success:       false,
		FeatureID:     featureID,
		Reason:        reason,
		Message:       reason,
		UsesRemaining: uses,
	}
}

// actionAvailable checks the slot the feature spends and whether a condition
// stops the actor from acting. Triggered features with no cost always pass.
func actionAvailable(actor *combat.Snapshot, def *features.Definition) bool {
	if !actor.Combat.CanSpend(def.ActionCost) {
		return false
	}

	types := make([]conditions.ConditionType, 0, len(actor.Conditions))
	for _, c := range actor.Conditions {
		types = append(types, conditions.ConditionType(c))
	}
	effect := conditions.CombineEffects(types)

	switch def.ActionCost {
	case combat.CostNone:
		return true
	case combat.CostReaction:
		return !effect.CantReact
	default:
		return !effect.CantAct
	}
}

func (s *service) ProcessRest(characterID string, kind features.RestKind) ([]string, error) {
	if kind != features.ShortRest && kind != features.LongRest {
		return nil, dnderr.InvalidArgumentf("unknown rest kind '%s'", kind)
	}

	s.mu.Lock()
	cf, ok := s.characters[characterID]
	if !ok {
		s.mu.Unlock()
		return nil, dnderr.NotFoundf("no features initialized for character '%s'", characterID).
			WithMeta("character_id", characterID)
	}
	reset := cf.rest(kind)
	s.mu.Unlock()

	log.Printf("[ABILITY] %s took a %s, reset %v", characterID, kind, reset)

	name := events.ShortRest
	if kind == features.LongRest {
		name = events.LongRest
	}
	if s.eventBus != nil {
		target := events.EntityRef{ID: characterID, Kind: string(combat.KindCharacter)}
		if err := s.eventBus.Publish(context.Background(), name, nil, target, nil); err != nil {
			log.Printf("[ABILITY] event %s for %s failed: %v", name, characterID, err)
		}
	}

	return reset, nil
}

func (s *service) ResetActionEconomy(actorID string) bool {
	snap, ok := s.bridge.GetEntityData(actorID)
	if !ok {
		return false
	}

	state := snap.Combat
	state.Reset(snap.Stats.Speed)
	if !s.bridge.SetCombatState(snap.Ref, state) {
		return false
	}

	s.mu.Lock()
	delete(s.firedThisTurn, snap.Ref)
	s.mu.Unlock()
	return true
}

func (s *service) GetAvailableFeatures(characterID string) ([]*AvailableFeature, error) {
	s.mu.RLock()
	cf, ok := s.characters[characterID]
	if !ok {
		s.mu.RUnlock()
		return nil, dnderr.NotFoundf("no features initialized for character '%s'", characterID).
			WithMeta("character_id", characterID)
	}
	type entry struct {
		def  *features.Definition
		uses int
	}
	entries := make([]entry, 0, len(cf.defs))
	for _, def := range cf.defs {
		entries = append(entries, entry{def: def, uses: cf.remaining(def)})
	}
	s.mu.RUnlock()

	// outside an encounter there is no action economy to check
	actor, inCombat := s.bridge.GetEntityData(characterID)

	available := make([]*AvailableFeature, 0, len(entries))
	for _, e := range entries {
		af := &AvailableFeature{
			Feature:       e.def,
			UsesRemaining: e.uses,
		}
		if e.def.IsResourceGated() {
			af.MaxUses = e.def.Resource.Max
		}

		switch {
		case e.def.Activation == features.ActivationPassive:
			af.Reason = ReasonFeaturePassive
		case e.uses == 0:
			af.Reason = ReasonNoUsesRemaining
		case inCombat && !actionAvailable(actor, e.def):
			af.Reason = ReasonActionNotAvailable
		default:
			af.Available = true
		}

		available = append(available, af)
	}

	return available, nil
}

func (s *service) UsesRemaining(characterID, featureID string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cf, ok := s.characters[characterID]
	if !ok {
		return 0, false
	}
	def, ok := cf.find(featureID)
	if !ok || !def.IsResourceGated() {
		return 0, false
	}
	return cf.uses[def.ID], true
}

func (s *service) DefenseProfile(id string) (*damage.DefenseProfile, bool) {
	profile, ok := s.bridge.DefenseProfile(id)
	if !ok {
		return nil, false
	}

	snap, ok := s.bridge.GetEntityData(id)
	if !ok || !snap.IsCharacter() {
		return profile, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cf, ok := s.characters[snap.SourceID]
	if !ok {
		return profile, true
	}
	for _, def := range cf.defs {
		profile.Resistances = append(profile.Resistances, def.GrantsResistances...)
		for _, c := range def.GrantsConditions {
			if !profile.HasCondition(string(c)) {
				profile.Conditions = append(profile.Conditions, string(c))
			}
		}
	}
	return profile, true
}

func (s *service) publish(ctx context.Context, name string, actor *combat.Snapshot, data map[string]any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, name, actor.EventRef(), nil, data); err != nil {
		log.Printf("[ABILITY] event %s for %s failed: %v", name, actor.Ref, err)
	}
}
