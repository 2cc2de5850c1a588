// Package condition is the conditions store: active statuses for every combatant, keyed by entity id.
package condition

import (
	"sync"

	"github.com/KirkDiggler/combat-engine/internal/domain/conditions"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
)

// Service manages conditions for all entities
type Service interface {
	// Register records the kind of an entity so published events carry it
	Register(ref events.EntityRef)

	Apply(entityID string, condType conditions.ConditionType, source string, duration conditions.Duration) (*conditions.Condition, error)

	// Remove reports whether the condition was active
	Remove(entityID string, condType conditions.ConditionType) bool

	Get(entityID string) []*conditions.Condition
	Types(entityID string) []conditions.ConditionType
	Has(entityID string, condType conditions.ConditionType) bool
	ActiveEffects(entityID string) conditions.Effect

	// Clear drops every condition and forgets the entity
	Clear(entityID string)

	ProcessTurnStart(entityID string)
	ProcessTurnEnd(entityID string)
	ProcessRoundEnd(entityID string)
	ProcessDamage(entityID string, amount int)
	ProcessRest(entityID string, long bool)
}

// Config configures the service
type Config struct {
	Bus         *events.Bus
	IDGenerator uuid.Generator
}

type service struct {
	mu       sync.RWMutex
	managers map[string]*conditions.Manager
	kinds    map[string]string
	bus      *events.Bus
	ids      uuid.Generator
}

// NewService creates an in-memory conditions store. cfg may be nil.
func NewService(cfg *Config) Service {
	if cfg == nil {
		cfg = &Config{}
	}
	return &service{
		managers: make(map[string]*conditions.Manager),
		kinds:    make(map[string]string),
		bus:      cfg.Bus,
		ids:      cfg.IDGenerator,
	}
}

func (s *service) Register(ref events.EntityRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds[ref.ID] = ref.Kind
}

func (s *service) manager(entityID string) (*conditions.Manager, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.managers[entityID]
	return m, ok
}

func (s *service) getOrCreateManager(entityID string) *conditions.Manager {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.managers[entityID]; ok {
		return m
	}

	ref := events.EntityRef{ID: entityID, Kind: s.kinds[entityID]}
	m := conditions.NewManager(ref, s.bus, s.ids)
	s.managers[entityID] = m
	return m
}

func (s *service) Apply(entityID string, condType conditions.ConditionType, source string, duration conditions.Duration) (*conditions.Condition, error) {
	return s.getOrCreateManager(entityID).Add(condType, source, duration)
}

func (s *service) Remove(entityID string, condType conditions.ConditionType) bool {
	m, ok := s.manager(entityID)
	if !ok {
		return false
	}
	return m.Remove(condType)
}

func (s *service) Get(entityID string) []*conditions.Condition {
	m, ok := s.manager(entityID)
	if !ok {
		return nil
	}
	return m.List()
}

func (s *service) Types(entityID string) []conditions.ConditionType {
	m, ok := s.manager(entityID)
	if !ok {
		return nil
	}
	return m.Types()
}

func (s *service) Has(entityID string, condType conditions.ConditionType) bool {
	m, ok := s.manager(entityID)
	return ok && m.Has(condType)
}

func (s *service) ActiveEffects(entityID string) conditions.Effect {
	m, ok := s.manager(entityID)
	if !ok {
		return conditions.Effect{}
	}
	return m.ActiveEffects()
}

func (s *service) Clear(entityID string) {
	s.mu.Lock()
	m, ok := s.managers[entityID]
	delete(s.managers, entityID)
	delete(s.kinds, entityID)
	s.mu.Unlock()

	if ok {
		m.Clear()
	}
}

func (s *service) ProcessTurnStart(entityID string) {
	if m, ok := s.manager(entityID); ok {
		m.ProcessTurnStart()
	}
}

func (s *service) ProcessTurnEnd(entityID string) {
	if m, ok := s.manager(entityID); ok {
		m.ProcessTurnEnd()
	}
}

func (s *service) ProcessRoundEnd(entityID string) {
	if m, ok := s.manager(entityID); ok {
		m.ProcessRoundEnd()
	}
}

func (s *service) ProcessDamage(entityID string, amount int) {
	if m, ok := s.manager(entityID); ok {
		m.ProcessDamage(amount)
	}
}

func (s *service) ProcessRest(entityID string, long bool) {
	if m, ok := s.manager(entityID); ok {
		m.ProcessRest(long)
	}
}
