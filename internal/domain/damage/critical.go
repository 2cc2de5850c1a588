package damage

import (
	"github.com/KirkDiggler/combat-engine/internal/dice"
)

// When only a total is known, this share of it is assumed to be dice
const criticalDiceShare = 6

// CriticalDamage applies a critical multiplier to a total whose dice portion is unknown.
// A multiplier of 2 re-adds 60% of the amount; other multipliers scale the whole amount.
// extraDice ("2d6") is rolled and added regardless. A non-positive multiplier means 2.
func CriticalDamage(amount, multiplier int, extraDice string, roller dice.Roller) (int, error) {
	if multiplier <= 0 {
		multiplier = 2
	}

	total := amount
	switch multiplier {
	case 1:
	case 2:
		total = amount + amount*criticalDiceShare/10
	default:
		total = amount * multiplier
	}

	if extraDice != "" {
		extra, err := dice.RollDamage(roller, extraDice)
		if err != nil {
			return 0, err
		}
		total += extra.Total
	}

	return total, nil
}

// CriticalFromDice multiplies only the rolled portion and keeps the flat modifier once
func CriticalFromDice(diceAmount, flat, multiplier int) int {
	if multiplier <= 0 {
		multiplier = 2
	}
	return max(diceAmount*multiplier+flat, 0)
}

// CriticalInstance returns a copy of inst with critical damage applied.
// The dice-aware path is used when DiceAmount is known.
func CriticalInstance(inst Instance, multiplier int) Instance {
	out := inst
	out.IsCritical = true

	if inst.DiceAmount > 0 {
		if multiplier <= 0 {
			multiplier = 2
		}
		flat := inst.Modifier
		if flat == 0 {
			flat = inst.Amount - inst.DiceAmount
		}
		out.Amount = CriticalFromDice(inst.DiceAmount, flat, multiplier)
		out.DiceAmount = inst.DiceAmount * multiplier
		return out
	}

	// no roller needed without extra dice
	out.Amount, _ = CriticalDamage(inst.Amount, multiplier, "", nil)
	return out
}
