package testutils

import (
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/repositories/monsters"
)

// CreateTestCharacter creates a level 1 fighter at full health
func CreateTestCharacter(id, ownerID, name string) *characters.Character {
	return &characters.Character{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Class:   "fighter",
		Level:   1,
		HitPoints: characters.HitPoints{
			Current: 12,
			Max:     12,
		},
		AbilityScores: map[combat.Ability]int{
			combat.AbilityStrength:     16,
			combat.AbilityDexterity:    14,
			combat.AbilityConstitution: 15,
			combat.AbilityIntelligence: 10,
			combat.AbilityWisdom:       12,
			combat.AbilityCharisma:     8,
		},
		ProficiencyBonus: 2,
		ArmorClass:       16,
		Speed:            30,
	}
}

// CreateTestFighter is a level 2 fighter at 20 of 30 HP
func CreateTestFighter(id string) *characters.Character {
	char := CreateTestCharacter(id, "owner-1", "Brakka")
	char.Level = 2
	char.HitPoints = characters.HitPoints{Current: 20, Max: 30}
	return char
}

// CreateTestBarbarian is a level 3 bear totem barbarian
func CreateTestBarbarian(id string) *characters.Character {
	char := CreateTestCharacter(id, "owner-1", "Ulfgar")
	char.Class = "barbarian"
	char.Level = 3
	char.HitPoints = characters.HitPoints{Current: 35, Max: 35}
	char.ArmorClass = 14
	char.Speed = 40
	return char
}

// CreateTestGoblin is the SRD goblin template
func CreateTestGoblin() *monsters.Monster {
	return &monsters.Monster{
		ID:           "goblin",
		Name:         "Goblin",
		CreatureType: "humanoid",
		ArmorClass:   15,
		HitPoints:    7,
		HitDice:      "2d6",
		Speed:        30,
		AbilityScores: map[combat.Ability]int{
			combat.AbilityStrength:  8,
			combat.AbilityDexterity: 14,
		},
	}
}

// CreateTestSkeleton is undead, vulnerable to bludgeoning and immune to poison
func CreateTestSkeleton() *monsters.Monster {
	return &monsters.Monster{
		ID:                    "skeleton",
		Name:                  "Skeleton",
		CreatureType:          "undead",
		ArmorClass:            13,
		HitDice:               "2d8+4",
		Speed:                 30,
		DamageVulnerabilities: []string{"bludgeoning"},
		DamageImmunities:      []string{"poison"},
	}
}

// FireResistance is a plain resistance entry
func FireResistance() damage.Resistance {
	return damage.Resistance{Match: string(damage.TypeFire), Effect: damage.EffectResistance, Label: "ring of fire resistance"}
}
