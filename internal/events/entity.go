package events

// EntityRef identifies a combatant on the toolkit bus. It satisfies core.Entity.
type EntityRef struct {
	ID   string
	Kind string
}

func (r EntityRef) GetID() string   { return r.ID }
func (r EntityRef) GetType() string { return r.Kind }
