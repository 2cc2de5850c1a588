package conditions

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
)

const maxExhaustion = 6

// Manager tracks the conditions of one entity
type Manager struct {
	mu         sync.RWMutex
	conditions map[ConditionType]*Condition
	entity     events.EntityRef
	bus        *events.Bus
	ids        uuid.Generator
}

// NewManager creates a manager for entity. bus and ids may be nil.
func NewManager(entity events.EntityRef, bus *events.Bus, ids uuid.Generator) *Manager {
	if ids == nil {
		ids = uuid.NewPrefixedGenerator("cond")
	}
	return &Manager{
		conditions: make(map[ConditionType]*Condition),
		entity:     entity,
		bus:        bus,
		ids:        ids,
	}
}

// Add applies a condition. Re-applying refreshes a longer duration instead of stacking,
// except exhaustion which gains a level.
func (m *Manager) Add(condType ConditionType, source string, duration Duration) (*Condition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.conditions[condType]; ok {
		if condType == Exhaustion {
			if existing.Level >= maxExhaustion {
				return copyCondition(existing), fmt.Errorf("already at maximum exhaustion level")
			}
			existing.Level++
			return copyCondition(existing), nil
		}

		if duration.Type == existing.Duration.Type && duration.Value > existing.Remaining {
			existing.Duration = duration
			existing.Remaining = duration.Value
		}
		return copyCondition(existing), nil
	}

	if duration.Type == "" {
		duration = Permanent
	}

	condition := &Condition{
		ID:        m.ids.New(),
		Type:      condType,
		Source:    source,
		Duration:  duration,
		Remaining: duration.Value,
		AppliedAt: time.Now(),
	}
	if condType == Exhaustion {
		condition.Level = 1
	}
	m.conditions[condType] = condition

	log.Printf("[CONDITIONS] Applied %s to %s (%s %d) from %s",
		condType, m.entity.ID, duration.Type, duration.Value, source)
	m.publish(events.ConditionApplied, condition)

	return copyCondition(condition), nil
}

// Remove drops a condition by type and reports whether it was active
func (m *Manager) Remove(condType ConditionType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	condition, ok := m.conditions[condType]
	if !ok {
		return false
	}
	m.removeLocked(condition, "removed")
	return true
}

// Clear drops every condition
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, condition := range m.conditions {
		m.removeLocked(condition, "cleared")
	}
}

// Has checks whether a condition type is active
func (m *Manager) Has(condType ConditionType) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.conditions[condType]
	return ok
}

// Get returns a copy of the active condition of a type
func (m *Manager) Get(condType ConditionType) (*Condition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	condition, ok := m.conditions[condType]
	if !ok {
		return nil, false
	}
	return copyCondition(condition), true
}

// Types returns the active condition types in sorted order
func (m *Manager) Types() []ConditionType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make([]ConditionType, 0, len(m.conditions))
	for t := range m.conditions {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// List returns copies of every active condition, sorted by type
func (m *Manager) List() []*Condition {
	types := m.Types()

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Condition, 0, len(types))
	for _, t := range types {
		if condition, ok := m.conditions[t]; ok {
			out = append(out, copyCondition(condition))
		}
	}
	return out
}

// ActiveEffects combines the effects of all active conditions
func (m *Manager) ActiveEffects() Effect {
	return CombineEffects(m.Types())
}

// ProcessTurnStart ticks turn-based durations
func (m *Manager) ProcessTurnStart() {
	m.tick(DurationTurns)
}

// ProcessRoundEnd ticks round-based durations
func (m *Manager) ProcessRoundEnd() {
	m.tick(DurationRounds)
}

// ProcessTurnEnd expires conditions that last until the end of the next turn
func (m *Manager) ProcessTurnEnd() {
	m.expireWhere(func(c *Condition) bool {
		return c.Duration.Type == DurationEndOfNextTurn
	}, "turn ended")
}

// ProcessDamage ends conditions broken by taking damage
func (m *Manager) ProcessDamage(amount int) {
	if amount <= 0 {
		return
	}
	m.expireWhere(func(c *Condition) bool {
		return c.Duration.Type == DurationUntilDamaged
	}, "damaged")
}

// ProcessRest ends rest-bound conditions. Long rests also end long-rest ones.
func (m *Manager) ProcessRest(long bool) {
	m.expireWhere(func(c *Condition) bool {
		switch c.Duration.Type {
		case DurationUntilRest:
			return true
		case DurationUntilLongRest:
			return long
		}
		return false
	}, "rested")
}

func (m *Manager) tick(durationType DurationType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, condition := range m.conditions {
		if condition.Duration.Type != durationType {
			continue
		}
		condition.Remaining--
		if condition.Remaining <= 0 {
			m.removeLocked(condition, "expired")
		}
	}
}

func (m *Manager) expireWhere(match func(*Condition) bool, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, condition := range m.conditions {
		if match(condition) {
			m.removeLocked(condition, reason)
		}
	}
}

// removeLocked requires m.mu held for writing
func (m *Manager) removeLocked(condition *Condition, reason string) {
	delete(m.conditions, condition.Type)
	log.Printf("[CONDITIONS] %s on %s %s", condition.Type, m.entity.ID, reason)
	m.publish(events.ConditionRemoved, condition)
}

func (m *Manager) publish(name string, condition *Condition) {
	err := m.bus.Publish(context.Background(), name, nil, m.entity, map[string]any{
		events.KeyConditionID:   condition.ID,
		events.KeyConditionType: string(condition.Type),
		events.KeySource:        condition.Source,
	})
	if err != nil {
		log.Printf("[CONDITIONS] Failed to publish %s: %v", name, err)
	}
}

func copyCondition(c *Condition) *Condition {
	copied := *c
	return &copied
}
