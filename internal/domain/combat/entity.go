// Package combat holds the component records of an entity in an encounter.
package combat

import (
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/events"
)

// Kind tags where an entity came from
type Kind string

const (
	KindCharacter Kind = "character"
	KindMonster   Kind = "monster"
)

// Snapshot is a read-only composite view of an entity's components
type Snapshot struct {
	// Handle is the session-internal id; Ref is the id callers use
	Handle string
	Ref    string
	Kind   Kind
	Name   string

	// SourceID is the character id or monster template id
	SourceID string

	Health       Health
	Stats        Stats
	Conditions   []string
	Combat       CombatState
	Resistances  []damage.Resistance
	CreatureType string
}

// EventRef identifies the entity on the event bus
func (s *Snapshot) EventRef() events.EntityRef {
	return events.EntityRef{ID: s.Ref, Kind: string(s.Kind)}
}

// IsCharacter reports whether the entity is backed by a character record
func (s *Snapshot) IsCharacter() bool {
	return s.Kind == KindCharacter
}
