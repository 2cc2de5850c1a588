package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/combat-engine/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll queues one more roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue of roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Remaining reports how many queued rolls are unused
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	rawTotal := 0

	for i := 0; i < count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		rawTotal += roll
	}

	return &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}
