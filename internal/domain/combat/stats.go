package combat

// Ability is one of the six ability scores
type Ability string

const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

var Abilities = []Ability{
	AbilityStrength, AbilityDexterity, AbilityConstitution,
	AbilityIntelligence, AbilityWisdom, AbilityCharisma,
}

// AbilityScore is a score and its derived modifier
type AbilityScore struct {
	Value    int `json:"value"`
	Modifier int `json:"modifier"`
}

// DefaultAbilityScore is used when a record lacks an ability
var DefaultAbilityScore = AbilityScore{Value: 10, Modifier: 0}

// NewAbilityScore derives the modifier, rounding down: 9 -> -1, 12 -> +1
func NewAbilityScore(value int) AbilityScore {
	diff := value - 10
	mod := diff / 2
	if diff < 0 && diff%2 != 0 {
		mod--
	}
	return AbilityScore{Value: value, Modifier: mod}
}

// Stats is the static combat profile of an entity
type Stats struct {
	Abilities        map[Ability]AbilityScore `json:"abilities"`
	ProficiencyBonus int                      `json:"proficiency_bonus"`
	ArmorClass       int                      `json:"armor_class"`
	Speed            int                      `json:"speed"`
	Level            int                      `json:"level"`
}

// NewStats fills every ability from scores, defaulting the missing ones
func NewStats(scores map[Ability]int) Stats {
	s := Stats{Abilities: make(map[Ability]AbilityScore, len(Abilities))}
	for _, ability := range Abilities {
		if value, ok := scores[ability]; ok {
			s.Abilities[ability] = NewAbilityScore(value)
		} else {
			s.Abilities[ability] = DefaultAbilityScore
		}
	}
	return s
}

// Modifier returns the modifier for an ability, 0 when unknown
func (s Stats) Modifier(ability Ability) int {
	return s.Abilities[ability].Modifier
}

// Clone deep-copies the ability map
func (s Stats) Clone() Stats {
	out := s
	out.Abilities = make(map[Ability]AbilityScore, len(s.Abilities))
	for k, v := range s.Abilities {
		out.Abilities[k] = v
	}
	return out
}
