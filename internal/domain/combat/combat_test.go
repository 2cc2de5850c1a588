package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
)

func TestHealth_Damage(t *testing.T) {
	tests := []struct {
		name     string
		health   combat.Health
		amount   int
		want     combat.Health
		wantLost int
	}{
		{
			name:     "temporary hp absorbs first",
			health:   combat.Health{Current: 20, Max: 20, Temporary: 5},
			amount:   8,
			want:     combat.Health{Current: 17, Max: 20},
			wantLost: 8,
		},
		{
			name:     "clamps at zero",
			health:   combat.Health{Current: 4, Max: 20},
			amount:   10,
			want:     combat.Health{Current: 0, Max: 20},
			wantLost: 4,
		},
		{
			name:     "non positive is ignored",
			health:   combat.Health{Current: 4, Max: 20},
			amount:   -3,
			want:     combat.Health{Current: 4, Max: 20},
			wantLost: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.health
			lost := h.Damage(tt.amount)
			assert.Equal(t, tt.want, h)
			assert.Equal(t, tt.wantLost, lost)
		})
	}
}

func TestHealth_Heal(t *testing.T) {
	h := combat.Health{Current: 18, Max: 20}
	assert.Equal(t, 2, h.Heal(10))
	assert.Equal(t, 20, h.Current)
	assert.Equal(t, 0, h.Heal(5))
}

func TestHealth_TemporaryDoesNotStack(t *testing.T) {
	h := combat.Health{Current: 10, Max: 10}
	assert.True(t, h.AddTemporary(5))
	assert.False(t, h.AddTemporary(3))
	assert.Equal(t, 5, h.Temporary)
}

func TestHealth_Thresholds(t *testing.T) {
	assert.True(t, combat.Health{Current: 14, Max: 30}.BelowHalf())
	assert.False(t, combat.Health{Current: 15, Max: 30}.BelowHalf())
	assert.True(t, combat.Health{Current: 15, Max: 30}.Bloodied())
	assert.False(t, combat.Health{Current: 16, Max: 30}.Bloodied())
	assert.True(t, combat.Health{Current: 0, Max: 30}.IsDown())
}

func TestNewStats_DefaultsMissingAbilities(t *testing.T) {
	stats := combat.NewStats(map[combat.Ability]int{
		combat.AbilityStrength:  16,
		combat.AbilityDexterity: 9,
	})

	assert.Equal(t, combat.AbilityScore{Value: 16, Modifier: 3}, stats.Abilities[combat.AbilityStrength])
	assert.Equal(t, combat.AbilityScore{Value: 9, Modifier: -1}, stats.Abilities[combat.AbilityDexterity])
	assert.Equal(t, combat.DefaultAbilityScore, stats.Abilities[combat.AbilityWisdom])
	assert.Len(t, stats.Abilities, 6)
}

func TestCombatState_SpendAndReset(t *testing.T) {
	state := combat.NewCombatState(30)

	assert.True(t, state.Spend(combat.CostAction))
	assert.False(t, state.Spend(combat.CostAction))
	assert.True(t, state.Spend(combat.CostFree))
	assert.True(t, state.Spend(combat.CostReaction))
	assert.False(t, state.CanSpend(combat.CostReaction))

	state.Restore(combat.CostAction)
	assert.True(t, state.ActionAvailable)

	state.MovementRemaining = 5
	state.Initiative = 17
	state.Reset(30)
	assert.True(t, state.ReactionAvailable)
	assert.Equal(t, 30, state.MovementRemaining)
	assert.Equal(t, 17, state.Initiative)
}
