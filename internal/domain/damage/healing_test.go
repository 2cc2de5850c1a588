package damage_test

import (
	"testing"

	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/stretchr/testify/assert"
)

func TestCalculateHealing(t *testing.T) {
	living := &damage.DefenseProfile{Health: damage.HealthSnapshot{Current: 18, Max: 20}}
	undead := &damage.DefenseProfile{Health: damage.HealthSnapshot{Current: 5, Max: 20}, CreatureType: "Undead"}

	tests := []struct {
		name          string
		profile       *damage.DefenseProfile
		amount        int
		source        string
		wantEffective int
		wantOverflow  int
		wantBlocked   bool
		wantInverted  bool
	}{
		{
			name:          "clamps to max and reports overflow",
			profile:       living,
			amount:        10,
			source:        "second wind",
			wantEffective: 2,
			wantOverflow:  8,
		},
		{
			name:          "undead block positive energy",
			profile:       undead,
			amount:        10,
			source:        "Positive Energy burst",
			wantEffective: 0,
			wantBlocked:   true,
		},
		{
			name:          "undead invert cure spells",
			profile:       undead,
			amount:        7,
			source:        "cure wounds",
			wantEffective: -7,
			wantInverted:  true,
		},
		{
			name:          "cure overrides a positive energy block",
			profile:       undead,
			amount:        4,
			source:        "positive energy cure",
			wantEffective: -4,
			wantInverted:  true,
		},
		{
			name:          "undead heal normally from other sources",
			profile:       undead,
			amount:        4,
			source:        "vampiric touch",
			wantEffective: 4,
		},
		{
			name:          "living creatures take cure normally",
			profile:       living,
			amount:        1,
			source:        "cure wounds",
			wantEffective: 1,
		},
		{
			name:          "full health overflows everything",
			profile:       &damage.DefenseProfile{Health: damage.HealthSnapshot{Current: 20, Max: 20}},
			amount:        3,
			wantEffective: 0,
			wantOverflow:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := damage.CalculateHealing(tt.amount, tt.profile, tt.source)

			assert.Equal(t, tt.amount, got.Requested)
			assert.Equal(t, tt.wantEffective, got.Effective)
			assert.Equal(t, tt.wantOverflow, got.Overflow)
			assert.Equal(t, tt.wantBlocked, got.Blocked)
			assert.Equal(t, tt.wantInverted, got.Inverted)
		})
	}
}
