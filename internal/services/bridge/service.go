package bridge

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/repositories/monsters"
	"github.com/KirkDiggler/combat-engine/internal/services/condition"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
)

const (
	defaultSyncConcurrency = 4
	defaultActorID         = "combat-engine"
)

// Config holds configuration for the bridge
type Config struct {
	CharacterStore characters.Repository
	MonsterStore   monsters.Repository

	// Conditions defaults to an in-memory store
	Conditions condition.Service
	EventBus   *events.Bus

	IDGenerator uuid.Generator

	// AutoSync sends character changes as they happen instead of waiting for SyncAllToServices
	AutoSync        bool
	SyncConcurrency int

	// ActorID is recorded as UpdatedBy on write-backs
	ActorID string
}

// entityMeta is the identity component of an entity
type entityMeta struct {
	ref          string
	kind         combat.Kind
	name         string
	sourceID     string
	creatureType string
}

type service struct {
	characterStore characters.Repository
	monsterStore   monsters.Repository
	conditions     condition.Service
	bus            *events.Bus
	ids            uuid.Generator

	autoSync        bool
	syncConcurrency int
	actorID         string

	mu sync.RWMutex

	// components, keyed by handle
	meta        map[string]*entityMeta
	health      map[string]*combat.Health
	stats       map[string]combat.Stats
	combatState map[string]*combat.CombatState
	resistances map[string][]damage.Resistance

	refToHandle map[string]string
	handleToRef map[string]string

	// pending write-backs: handle -> change version
	pending map[string]uint64
	version uint64

	// one write-back in flight per handle
	writeLocksMu sync.Mutex
	writeLocks   map[string]*sync.Mutex
}

// NewService creates a bridge
func NewService(cfg *Config) Service {
	if cfg == nil {
		panic("bridge config cannot be nil")
	}
	if cfg.CharacterStore == nil {
		panic("character store is required")
	}
	if cfg.MonsterStore == nil {
		panic("monster store is required")
	}

	svc := &service{
		characterStore:  cfg.CharacterStore,
		monsterStore:    cfg.MonsterStore,
		conditions:      cfg.Conditions,
		bus:             cfg.EventBus,
		ids:             cfg.IDGenerator,
		autoSync:        cfg.AutoSync,
		syncConcurrency: cfg.SyncConcurrency,
		actorID:         cfg.ActorID,
		meta:            make(map[string]*entityMeta),
		health:          make(map[string]*combat.Health),
		stats:           make(map[string]combat.Stats),
		combatState:     make(map[string]*combat.CombatState),
		resistances:     make(map[string][]damage.Resistance),
		refToHandle:     make(map[string]string),
		handleToRef:     make(map[string]string),
		pending:         make(map[string]uint64),
		writeLocks:      make(map[string]*sync.Mutex),
	}

	if svc.conditions == nil {
		svc.conditions = condition.NewService(&condition.Config{Bus: cfg.EventBus})
	}
	if svc.ids == nil {
		svc.ids = uuid.NewPrefixedGenerator("ent")
	}
	if svc.syncConcurrency <= 0 {
		svc.syncConcurrency = defaultSyncConcurrency
	}
	if svc.actorID == "" {
		svc.actorID = defaultActorID
	}

	return svc
}

// InstanceKey is the ref of a monster instance
func InstanceKey(monsterID, instanceName string) string {
	if instanceName == "" {
		return monsterID
	}
	return monsterID + "#" + instanceName
}

func (s *service) CreateFromCharacter(ctx context.Context, characterID string) (*combat.Snapshot, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	if snap, ok := s.GetEntityData(characterID); ok {
		return snap, nil
	}

	char, err := s.characterStore.Get(ctx, characterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load character %s", characterID)
	}

	stats := combat.NewStats(char.AbilityScores)
	stats.ProficiencyBonus = char.ProficiencyBonus
	stats.ArmorClass = char.ArmorClass
	stats.Speed = char.Speed
	stats.Level = char.Level

	health := &combat.Health{
		Current:   char.HitPoints.Current,
		Max:       char.HitPoints.Max,
		Temporary: char.HitPoints.Temporary,
	}
	health.Current = clamp(health.Current, 0, health.Max)

	meta := &entityMeta{
		ref:      characterID,
		kind:     combat.KindCharacter,
		name:     char.Name,
		sourceID: characterID,
	}

	s.mu.Lock()
	if handle, exists := s.refToHandle[characterID]; exists {
		// lost a race with another create; keep the first
		s.mu.Unlock()
		snap, _ := s.GetEntityData(handle)
		return snap, nil
	}
	handle := s.register(meta, health, stats, char.Resistances)
	s.mu.Unlock()

	for _, c := range char.Conditions {
		if _, err := s.conditions.Apply(characterID, conditions.ConditionType(c), "character record", conditions.Permanent); err != nil {
			log.Printf("[BRIDGE] failed to restore condition %s on %s: %v", c, characterID, err)
		}
	}

	log.Printf("[BRIDGE] registered character %s (%s) as %s, HP %d/%d", char.Name, characterID, handle, health.Current, health.Max)

	snap, _ := s.GetEntityData(handle)
	return snap, nil
}

func (s *service) CreateFromMonster(ctx context.Context, monsterID, instanceName string) (*combat.Snapshot, error) {
	if monsterID == "" {
		return nil, dnderr.InvalidArgument("monster ID is required")
	}

	key := InstanceKey(monsterID, instanceName)
	if snap, ok := s.GetEntityData(key); ok {
		return snap, nil
	}

	tmpl, err := s.monsterStore.Get(ctx, monsterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load monster %s", monsterID)
	}

	stats := combat.NewStats(tmpl.AbilityScores)
	stats.ArmorClass = tmpl.ArmorClass
	stats.Speed = tmpl.Speed

	maxHP := tmpl.MaxHitPoints()
	health := &combat.Health{Current: maxHP, Max: maxHP}

	name := tmpl.Name
	if instanceName != "" {
		name = name + " " + instanceName
	}
	meta := &entityMeta{
		ref:          key,
		kind:         combat.KindMonster,
		name:         name,
		sourceID:     monsterID,
		creatureType: strings.ToLower(tmpl.CreatureType),
	}

	s.mu.Lock()
	if handle, exists := s.refToHandle[key]; exists {
		s.mu.Unlock()
		snap, _ := s.GetEntityData(handle)
		return snap, nil
	}
	handle := s.register(meta, health, stats, tmpl.Resistances())
	s.mu.Unlock()

	log.Printf("[BRIDGE] registered monster %s (%s) as %s, HP %d", name, key, handle, maxHP)

	snap, _ := s.GetEntityData(handle)
	return snap, nil
}

// register stores every component; s.mu must be held
func (s *service) register(meta *entityMeta, health *combat.Health, stats combat.Stats, resistances []damage.Resistance) string {
	handle := s.ids.New()
	state := combat.NewCombatState(stats.Speed)

	s.meta[handle] = meta
	s.health[handle] = health
	s.stats[handle] = stats
	s.combatState[handle] = &state
	s.resistances[handle] = copyResistances(resistances)
	s.refToHandle[meta.ref] = handle
	s.handleToRef[handle] = meta.ref

	s.conditions.Register(events.EntityRef{ID: meta.ref, Kind: string(meta.kind)})
	return handle
}

// resolve maps a ref or handle to the handle; s.mu must be held
func (s *service) resolve(id string) (string, bool) {
	if handle, ok := s.refToHandle[id]; ok {
		return handle, true
	}
	if _, ok := s.meta[id]; ok {
		return id, true
	}
	return "", false
}

func (s *service) ApplyDamage(ctx context.Context, id string, amount int, damageType damage.Type) bool {
	s.mu.Lock()
	handle, ok := s.resolve(id)
	if !ok {
		s.mu.Unlock()
		return false
	}

	health := s.health[handle]
	lost := health.Damage(amount)
	meta := s.meta[handle]
	remaining := health.Current
	if lost > 0 {
		s.markDirty(ctx, handle)
	}
	s.mu.Unlock()

	if lost > 0 {
		s.conditions.ProcessDamage(meta.ref, lost)
	}

	s.publish(ctx, events.AfterTakeDamage, meta, map[string]any{
		events.KeyAmount:      lost,
		events.KeyDamageType:  string(damageType),
		events.KeyRemainingHP: remaining,
	})
	return true
}

func (s *service) ApplyHealing(ctx context.Context, id string, amount int) bool {
	s.mu.Lock()
	handle, ok := s.resolve(id)
	if !ok {
		s.mu.Unlock()
		return false
	}

	healed := s.health[handle].Heal(amount)
	meta := s.meta[handle]
	remaining := s.health[handle].Current
	if healed > 0 {
		s.markDirty(ctx, handle)
	}
	s.mu.Unlock()

	s.publish(ctx, events.HealingReceived, meta, map[string]any{
		events.KeyAmount:      healed,
		events.KeyRemainingHP: remaining,
	})
	return true
}

func (s *service) AddTemporaryHP(ctx context.Context, id string, amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.resolve(id)
	if !ok {
		return false
	}
	if !s.health[handle].AddTemporary(amount) {
		return false
	}
	s.markDirty(ctx, handle)
	return true
}

func (s *service) ApplyCondition(ctx context.Context, id string, condType conditions.ConditionType, source string, duration conditions.Duration) bool {
	s.mu.Lock()
	handle, ok := s.resolve(id)
	if !ok {
		s.mu.Unlock()
		return false
	}
	ref := s.meta[handle].ref
	s.mu.Unlock()

	if _, err := s.conditions.Apply(ref, condType, source, duration); err != nil {
		log.Printf("[BRIDGE] failed to apply %s to %s: %v", condType, ref, err)
		return false
	}

	s.mu.Lock()
	s.markDirty(ctx, handle)
	s.mu.Unlock()
	return true
}

func (s *service) RemoveCondition(ctx context.Context, id string, condType conditions.ConditionType) bool {
	s.mu.Lock()
	handle, ok := s.resolve(id)
	if !ok {
		s.mu.Unlock()
		return false
	}
	ref := s.meta[handle].ref
	s.mu.Unlock()

	if !s.conditions.Remove(ref, condType) {
		return false
	}

	s.mu.Lock()
	s.markDirty(ctx, handle)
	s.mu.Unlock()
	return true
}

func (s *service) GetEntityData(id string) (*combat.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handle, ok := s.resolve(id)
	if !ok {
		return nil, false
	}
	return s.snapshot(handle), true
}

// snapshot builds the composite view; s.mu must be held
func (s *service) snapshot(handle string) *combat.Snapshot {
	meta := s.meta[handle]
	return &combat.Snapshot{
		Handle:       handle,
		Ref:          meta.ref,
		Kind:         meta.kind,
		Name:         meta.name,
		SourceID:     meta.sourceID,
		Health:       *s.health[handle],
		Stats:        s.stats[handle].Clone(),
		Conditions:   s.conditionNames(meta.ref),
		Combat:       *s.combatState[handle],
		Resistances:  copyResistances(s.resistances[handle]),
		CreatureType: meta.creatureType,
	}
}

func (s *service) conditionNames(ref string) []string {
	types := s.conditions.Types(ref)
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

func (s *service) DefenseProfile(id string) (*damage.DefenseProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handle, ok := s.resolve(id)
	if !ok {
		return nil, false
	}

	ref := s.meta[handle].ref
	resistances := copyResistances(s.resistances[handle])
	resistances = append(resistances, s.conditions.ActiveEffects(ref).Resistances...)

	return &damage.DefenseProfile{
		ArmorClass:   s.stats[handle].ArmorClass,
		Health:       s.health[handle].Snapshot(),
		Resistances:  resistances,
		Conditions:   s.conditionNames(ref),
		CreatureType: s.meta[handle].creatureType,
	}, true
}

func (s *service) CombatState(id string) (combat.CombatState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handle, ok := s.resolve(id)
	if !ok {
		return combat.CombatState{}, false
	}
	return *s.combatState[handle], true
}

func (s *service) SetCombatState(id string, state combat.CombatState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.resolve(id)
	if !ok {
		return false
	}
	*s.combatState[handle] = state
	return true
}

func (s *service) SetInitiative(id string, initiative, turnOrder int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.resolve(id)
	if !ok {
		return false
	}
	s.combatState[handle].Initiative = initiative
	s.combatState[handle].TurnOrder = turnOrder
	return true
}

func (s *service) Entities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make([]string, 0, len(s.refToHandle))
	for ref := range s.refToHandle {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

func (s *service) RemoveEntity(ctx context.Context, id string) bool {
	s.mu.Lock()
	handle, ok := s.resolve(id)
	if !ok {
		s.mu.Unlock()
		return false
	}

	meta := s.meta[handle]

	// a character leaving with unsynced changes gets one last write-back
	var final *pendingWrite
	if _, dirty := s.pending[handle]; dirty && meta.kind == combat.KindCharacter {
		final = s.pendingWriteLocked(handle)
	}

	delete(s.meta, handle)
	delete(s.health, handle)
	delete(s.stats, handle)
	delete(s.combatState, handle)
	delete(s.resistances, handle)
	delete(s.refToHandle, meta.ref)
	delete(s.handleToRef, handle)
	delete(s.pending, handle)
	s.mu.Unlock()

	s.conditions.Clear(meta.ref)

	if final != nil {
		go s.sendFinal(context.WithoutCancel(ctx), final)
	}

	log.Printf("[BRIDGE] removed %s (%s)", meta.ref, handle)
	s.publish(ctx, events.EntityRemoved, meta, nil)
	return true
}

func (s *service) publish(ctx context.Context, name string, meta *entityMeta, data map[string]any) {
	if s.bus == nil {
		return
	}
	target := events.EntityRef{ID: meta.ref, Kind: string(meta.kind)}
	if err := s.bus.Publish(ctx, name, nil, target, data); err != nil {
		log.Printf("[BRIDGE] event %s for %s failed: %v", name, meta.ref, err)
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func copyResistances(in []damage.Resistance) []damage.Resistance {
	if len(in) == 0 {
		return nil
	}
	out := make([]damage.Resistance, len(in))
	for i, r := range in {
		r.RequiredConditions = append([]string(nil), r.RequiredConditions...)
		out[i] = r
	}
	return out
}
