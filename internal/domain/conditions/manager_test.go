package conditions

import (
	"context"
	"testing"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
)

func newTestManager(bus *events.Bus) *Manager {
	return NewManager(events.EntityRef{ID: "char-1", Kind: "character"}, bus, uuid.NewSequenceGenerator("cond"))
}

func TestManager_Add(t *testing.T) {
	manager := newTestManager(nil)

	t.Run("add poisoned", func(t *testing.T) {
		condition, err := manager.Add(Poisoned, "Giant Spider", Rounds(3))
		require.NoError(t, err)
		assert.Equal(t, "cond-1", condition.ID)
		assert.Equal(t, Poisoned, condition.Type)
		assert.Equal(t, "Giant Spider", condition.Source)
		assert.Equal(t, 3, condition.Remaining)
	})

	t.Run("reapplying refreshes to the longer duration", func(t *testing.T) {
		condition, err := manager.Add(Poisoned, "Another Spider", Rounds(5))
		require.NoError(t, err)
		assert.Equal(t, 5, condition.Remaining)
		assert.Len(t, manager.List(), 1)
	})

	t.Run("shorter reapplication keeps the original", func(t *testing.T) {
		condition, err := manager.Add(Poisoned, "Weak Spider", Rounds(1))
		require.NoError(t, err)
		assert.Equal(t, 5, condition.Remaining)
	})

	t.Run("exhaustion stacks to six", func(t *testing.T) {
		for i := 1; i <= maxExhaustion; i++ {
			condition, err := manager.Add(Exhaustion, "Forced March", Permanent)
			require.NoError(t, err)
			assert.Equal(t, i, condition.Level)
		}
		_, err := manager.Add(Exhaustion, "Forced March", Permanent)
		assert.Error(t, err)
	})

	t.Run("empty duration means permanent", func(t *testing.T) {
		condition, err := manager.Add(Prone, "shove", Duration{})
		require.NoError(t, err)
		assert.Equal(t, DurationPermanent, condition.Duration.Type)
	})
}

func TestManager_ReturnsCopies(t *testing.T) {
	manager := newTestManager(nil)
	condition, err := manager.Add(Blinded, "darkness", Rounds(2))
	require.NoError(t, err)

	condition.Remaining = 99

	stored, ok := manager.Get(Blinded)
	require.True(t, ok)
	assert.Equal(t, 2, stored.Remaining)
}

func TestManager_RemoveAndClear(t *testing.T) {
	manager := newTestManager(nil)
	_, _ = manager.Add(Stunned, "Mind Flayer", Rounds(1))
	_, _ = manager.Add(Prone, "trip", Permanent)

	assert.True(t, manager.Remove(Stunned))
	assert.False(t, manager.Remove(Stunned))
	assert.Equal(t, []ConditionType{Prone}, manager.Types())

	manager.Clear()
	assert.Empty(t, manager.Types())
}

func TestManager_DurationProcessing(t *testing.T) {
	manager := newTestManager(nil)
	_, _ = manager.Add(Frightened, "dragon", Duration{Type: DurationTurns, Value: 2})
	_, _ = manager.Add(Blinded, "sand", Rounds(1))
	_, _ = manager.Add(Dodging, "dodge", Duration{Type: DurationEndOfNextTurn})
	_, _ = manager.Add(Charmed, "song", Duration{Type: DurationUntilDamaged})
	_, _ = manager.Add(Rage, "rage", Duration{Type: DurationUntilLongRest})
	_, _ = manager.Add(Concentration, "bless", Duration{Type: DurationUntilRest})

	manager.ProcessTurnStart()
	assert.True(t, manager.Has(Frightened))
	manager.ProcessTurnStart()
	assert.False(t, manager.Has(Frightened))

	manager.ProcessRoundEnd()
	assert.False(t, manager.Has(Blinded))

	manager.ProcessTurnEnd()
	assert.False(t, manager.Has(Dodging))

	manager.ProcessDamage(0)
	assert.True(t, manager.Has(Charmed))
	manager.ProcessDamage(3)
	assert.False(t, manager.Has(Charmed))

	manager.ProcessRest(false)
	assert.False(t, manager.Has(Concentration))
	assert.True(t, manager.Has(Rage))
	manager.ProcessRest(true)
	assert.False(t, manager.Has(Rage))
}

func TestManager_PublishesEvents(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	var applied, removed []string
	bus.Subscribe(events.ConditionApplied, 0, func(_ context.Context, e rpgevents.Event) error {
		v, _ := events.StringValue(e, events.KeyConditionType)
		applied = append(applied, v)
		return nil
	})
	bus.Subscribe(events.ConditionRemoved, 0, func(_ context.Context, e rpgevents.Event) error {
		v, _ := events.StringValue(e, events.KeyConditionType)
		removed = append(removed, v)
		return nil
	})

	manager := newTestManager(bus)
	_, _ = manager.Add(RageBear, "rage", Rounds(10))
	manager.Remove(RageBear)

	assert.Equal(t, []string{"rage_bear"}, applied)
	assert.Equal(t, []string{"rage_bear"}, removed)
}

func TestCombineEffects(t *testing.T) {
	effect := CombineEffects([]ConditionType{Poisoned, Petrified, "unknown"})

	assert.True(t, effect.AttackDisadvantage)
	assert.True(t, effect.CantAct)
	require.Len(t, effect.Resistances, 2)
	assert.Equal(t, damage.EffectImmunity, effect.Resistances[1].Effect)
}
