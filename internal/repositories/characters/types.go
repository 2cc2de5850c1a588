package characters

import (
	"time"

	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
)

// HitPoints is the persisted health of a character
type HitPoints struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary"`
}

// Character is the record kept by the character store
type Character struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Class   string `json:"class"`
	Level   int    `json:"level"`

	HitPoints        HitPoints              `json:"hit_points"`
	AbilityScores    map[combat.Ability]int `json:"ability_scores"`
	ProficiencyBonus int                    `json:"proficiency_bonus"`
	ArmorClass       int                    `json:"armor_class"`
	Speed            int                    `json:"speed"`

	Resistances []damage.Resistance `json:"resistances,omitempty"`
	Conditions  []string            `json:"conditions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// Clone returns a deep copy so callers can't reach into stored state
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	if c.AbilityScores != nil {
		out.AbilityScores = make(map[combat.Ability]int, len(c.AbilityScores))
		for k, v := range c.AbilityScores {
			out.AbilityScores[k] = v
		}
	}
	if c.Resistances != nil {
		out.Resistances = make([]damage.Resistance, len(c.Resistances))
		for i, r := range c.Resistances {
			r.RequiredConditions = append([]string(nil), r.RequiredConditions...)
			out.Resistances[i] = r
		}
	}
	if c.Conditions != nil {
		out.Conditions = append([]string(nil), c.Conditions...)
	}
	return &out
}

// Update is a partial change. Nil fields are left as they are.
type Update struct {
	Name       *string    `json:"name,omitempty"`
	Level      *int       `json:"level,omitempty"`
	HitPoints  *HitPoints `json:"hit_points,omitempty"`
	ArmorClass *int       `json:"armor_class,omitempty"`
	Speed      *int       `json:"speed,omitempty"`
	Conditions *[]string  `json:"conditions,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u *Update) IsEmpty() bool {
	return u == nil || (u.Name == nil && u.Level == nil && u.HitPoints == nil &&
		u.ArmorClass == nil && u.Speed == nil && u.Conditions == nil)
}

// Apply merges the update into c and stamps the actor and time
func (u *Update) Apply(c *Character, actorID string, now time.Time) {
	if u != nil {
		if u.Name != nil {
			c.Name = *u.Name
		}
		if u.Level != nil {
			c.Level = *u.Level
		}
		if u.HitPoints != nil {
			c.HitPoints = *u.HitPoints
		}
		if u.ArmorClass != nil {
			c.ArmorClass = *u.ArmorClass
		}
		if u.Speed != nil {
			c.Speed = *u.Speed
		}
		if u.Conditions != nil {
			c.Conditions = append([]string(nil), (*u.Conditions)...)
		}
	}
	c.UpdatedAt = now.UTC()
	c.UpdatedBy = actorID
}

// HitPointsUpdate builds an update touching only hit points
func HitPointsUpdate(current, max, temporary int) *Update {
	return &Update{HitPoints: &HitPoints{Current: current, Max: max, Temporary: temporary}}
}
