package damage_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/combat-engine/internal/dice/mock"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticalDamage(t *testing.T) {
	tests := []struct {
		name       string
		amount     int
		multiplier int
		extraDice  string
		rolls      []int
		want       int
	}{
		{name: "double re-adds sixty percent", amount: 10, multiplier: 2, want: 16},
		{name: "double floors the share", amount: 7, multiplier: 2, want: 11},
		{name: "default multiplier is double", amount: 5, multiplier: 0, want: 8},
		{name: "triple scales the whole amount", amount: 6, multiplier: 3, want: 18},
		{name: "extra dice are always added", amount: 10, multiplier: 2, extraDice: "2d6", rolls: []int{3, 4}, want: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.rolls)

			got, err := damage.CriticalDamage(tt.amount, tt.multiplier, tt.extraDice, roller)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCriticalDamage_ExtraDiceError(t *testing.T) {
	roller := mockdice.NewManualMockRoller()

	_, err := damage.CriticalDamage(10, 2, "1d8", roller)
	assert.Error(t, err)
}

func TestCriticalInstance(t *testing.T) {
	known := damage.CriticalInstance(damage.Instance{Amount: 11, DiceAmount: 8, Type: damage.TypeSlashing}, 2)
	assert.True(t, known.IsCritical)
	assert.Equal(t, 19, known.Amount)
	assert.Equal(t, 16, known.DiceAmount)

	unknown := damage.CriticalInstance(damage.Instance{Amount: 10, Type: damage.TypeSlashing}, 2)
	assert.Equal(t, 16, unknown.Amount)
}

func TestCriticalInstance_NegativeModifier(t *testing.T) {
	// 1d4-5 rolled a 3: the hit itself clamps to 0
	inst := damage.Instance{Amount: 0, DiceAmount: 3, Modifier: -5, Type: damage.TypePiercing}

	crit := damage.CriticalInstance(inst, 2)
	assert.Equal(t, 1, crit.Amount)
	assert.Equal(t, 6, crit.DiceAmount)

	// doubled dice still below the penalty
	low := damage.CriticalInstance(damage.Instance{Amount: 0, DiceAmount: 1, Modifier: -5}, 2)
	assert.Equal(t, 0, low.Amount)
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		amount, max int
		want        damage.Severity
	}{
		{0, 30, damage.SeverityMinimal},
		{2, 30, damage.SeverityMinimal},
		{3, 30, damage.SeverityLight},
		{10, 30, damage.SeverityModerate},
		{15, 30, damage.SeverityHeavy},
		{25, 30, damage.SeveritySevere},
		{30, 30, damage.SeverityMassive},
		{5, 0, damage.SeverityMassive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, damage.ClassifySeverity(tt.amount, tt.max), "%d of %d", tt.amount, tt.max)
	}
	assert.Equal(t, "Heavy", damage.SeverityHeavy.Label())
}
