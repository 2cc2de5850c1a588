package combat

import "github.com/KirkDiggler/combat-engine/internal/domain/damage"

// Health tracks hit points and temporary HP.
// Current stays within [0, Max]; temporary HP sits on top of it.
type Health struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary"`
}

// Damage removes temporary HP first, then current HP, and returns the HP actually lost
func (h *Health) Damage(amount int) int {
	if amount <= 0 {
		return 0
	}

	lost := 0
	if h.Temporary > 0 {
		absorbed := min(h.Temporary, amount)
		h.Temporary -= absorbed
		amount -= absorbed
		lost += absorbed
	}

	taken := min(h.Current, amount)
	h.Current -= taken
	return lost + taken
}

// Heal restores hit points up to Max and returns what was restored
func (h *Health) Heal(amount int) int {
	if amount <= 0 || h.Current >= h.Max {
		return 0
	}

	before := h.Current
	h.Current = min(h.Current+amount, h.Max)
	return h.Current - before
}

// AddTemporary grants temporary HP. It doesn't stack; the larger pool wins.
func (h *Health) AddTemporary(amount int) bool {
	if amount <= h.Temporary {
		return false
	}
	h.Temporary = amount
	return true
}

func (h Health) IsDown() bool { return h.Current <= 0 }

// BelowHalf is strictly under half of max
func (h Health) BelowHalf() bool { return h.Current*2 < h.Max }

// Bloodied is at or under half of max
func (h Health) Bloodied() bool { return h.Current*2 <= h.Max }

// Snapshot converts to the resolver's view
func (h Health) Snapshot() damage.HealthSnapshot {
	return damage.HealthSnapshot{Current: h.Current, Max: h.Max, Temporary: h.Temporary}
}
