package dice

import (
	"fmt"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// randomRoller implements Roller on top of the rpg-toolkit dice source
type randomRoller struct {
	source rpgdice.Roller
}

// NewRandomRoller creates a roller backed by the toolkit's default random source
func NewRandomRoller() Roller {
	return &randomRoller{source: rpgdice.DefaultRoller}
}

// NewRollerFromSource wraps any toolkit dice source
func NewRollerFromSource(source rpgdice.Roller) Roller {
	if source == nil {
		source = rpgdice.DefaultRoller
	}
	return &randomRoller{source: source}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid dice count %d", count)
	}

	result := &RollResult{
		Total: bonus,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}
	if count == 0 {
		return result, nil
	}

	if sides < 1 {
		return nil, fmt.Errorf("invalid dice size %d", sides)
	}

	rolls, err := r.source.RollN(count, sides)
	if err != nil {
		return nil, fmt.Errorf("failed to roll %dd%d: %w", count, sides, err)
	}

	for _, roll := range rolls {
		result.RawTotal += roll
	}
	result.Rolls = rolls
	result.Total = result.RawTotal + bonus

	return result, nil
}
