// Package damage resolves raw damage against a defender's resistances and
// active conditions. Everything here is pure: inputs are never mutated.
package damage

import (
	"strings"
)

// Type is one of the canonical damage types
type Type string

const (
	TypeAcid        Type = "acid"
	TypeBludgeoning Type = "bludgeoning"
	TypeCold        Type = "cold"
	TypeFire        Type = "fire"
	TypeForce       Type = "force"
	TypeLightning   Type = "lightning"
	TypeNecrotic    Type = "necrotic"
	TypePiercing    Type = "piercing"
	TypePoison      Type = "poison"
	TypePsychic     Type = "psychic"
	TypeRadiant     Type = "radiant"
	TypeSlashing    Type = "slashing"
	TypeThunder     Type = "thunder"
)

// AllTypes lists the canonical types in a stable order
var AllTypes = []Type{
	TypeAcid, TypeBludgeoning, TypeCold, TypeFire, TypeForce, TypeLightning, TypeNecrotic,
	TypePiercing, TypePoison, TypePsychic, TypeRadiant, TypeSlashing, TypeThunder,
}

// IsValid reports whether t is canonical
func (t Type) IsValid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsPhysical is true for bludgeoning, piercing and slashing
func (t Type) IsPhysical() bool {
	return t == TypeBludgeoning || t == TypePiercing || t == TypeSlashing
}

// ParseType normalizes user or SRD input ("Fire", " cold ") into a Type
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// Instance is one packet of incoming damage
type Instance struct {
	Amount int
	Type   Type
	Source string

	IsCritical        bool
	IgnoresResistance bool
	// Piercing damage bypasses flat numeric reduction and absorption, not immunity or resistance
	Piercing bool

	// DiceAmount is the rolled part of Amount when the caller knows it.
	// Zero means unknown.
	DiceAmount int
	// Modifier is the flat part added to DiceAmount before Amount was clamped at 0.
	// Zero means Amount - DiceAmount.
	Modifier int
}

// Effect is what a matching resistance entry does to the amount
type Effect string

const (
	EffectImmunity      Effect = "immunity"
	EffectResistance    Effect = "resistance"
	EffectVulnerability Effect = "vulnerability"
	EffectNumeric       Effect = "numeric"
)

// Matcher selectors besides a plain damage type
const (
	MatchAll                = "all"
	MatchNonmagicalPhysical = "nonmagical_physical"
)

// Resistance is one entry of a defense profile
type Resistance struct {
	// Match is a damage type, MatchAll or MatchNonmagicalPhysical
	Match  string `json:"match" yaml:"match"`
	Effect Effect `json:"effect" yaml:"effect"`
	// Value is used by EffectNumeric: positive reduces, negative absorbs
	Value int `json:"value,omitempty" yaml:"value,omitempty"`
	// RequiredConditions gates the entry on at least one active condition
	RequiredConditions []string `json:"required_conditions,omitempty" yaml:"required_conditions,omitempty"`
	// Label names where the entry came from ("rage", "ring of fire resistance")
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// HealthSnapshot is the defender's hit points at resolution time
type HealthSnapshot struct {
	Current   int
	Max       int
	Temporary int
}

// DefenseProfile is everything the resolver needs to know about a defender
type DefenseProfile struct {
	ArmorClass   int
	Health       HealthSnapshot
	Resistances  []Resistance
	Conditions   []string
	CreatureType string
}

// HasCondition reports whether a condition is active on the profile
func (p *DefenseProfile) HasCondition(condition string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Conditions {
		if c == condition {
			return true
		}
	}
	return false
}

// IsUndead reports whether the creature type is undead
func (p *DefenseProfile) IsUndead() bool {
	return p != nil && strings.EqualFold(strings.TrimSpace(p.CreatureType), "undead")
}

// Conditions recognized by the resolver's special-modifier step
const (
	ConditionRageBear         = "rage_bear"
	ConditionHeavyArmorMaster = "heavy_armor_master"
	ConditionUncannyDodge     = "uncanny_dodge"
)

// ModificationKind labels a single step that changed an amount
type ModificationKind string

const (
	ModImmunity         ModificationKind = "immunity"
	ModResistance       ModificationKind = "resistance"
	ModVulnerability    ModificationKind = "vulnerability"
	ModReduction        ModificationKind = "reduction"
	ModAbsorption       ModificationKind = "absorption"
	ModRageBear         ModificationKind = "rage_bear"
	ModHeavyArmorMaster ModificationKind = "heavy_armor_master"
	ModUncannyDodge     ModificationKind = "uncanny_dodge"
)

// Modification records one change applied during resolution
type Modification struct {
	DamageType  Type
	Kind        ModificationKind
	Source      string
	Before      int
	After       int
	Description string
}

// Resolution is the aggregate outcome of resolving a batch of instances
type Resolution struct {
	Total              int
	ByType             map[Type]int
	ResistanceApplied  map[Type]int
	ImmunityBlocked    map[Type]int
	VulnerabilityAdded map[Type]int
	Modifications      []Modification
}

func newResolution() *Resolution {
	return &Resolution{
		ByType:             make(map[Type]int),
		ResistanceApplied:  make(map[Type]int),
		ImmunityBlocked:    make(map[Type]int),
		VulnerabilityAdded: make(map[Type]int),
	}
}
