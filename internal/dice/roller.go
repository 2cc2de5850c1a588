package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls count dice with the given sides and adds a flat bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult keeps the dice portion apart from the flat bonus so
// critical hits can double only what was rolled
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}
