package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/KirkDiggler/combat-engine/internal/dice/mock"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/repositories/monsters"
	"github.com/KirkDiggler/combat-engine/internal/services"
	"github.com/KirkDiggler/combat-engine/internal/services/ability"
	"github.com/KirkDiggler/combat-engine/internal/services/bridge"
	"github.com/KirkDiggler/combat-engine/internal/testutils"
)

func TestNewProvider_Defaults(t *testing.T) {
	p := services.NewProvider(nil)
	defer p.EventBus.Close()

	require.NotNil(t, p.Bridge)
	require.NotNil(t, p.Ability)
	require.NotNil(t, p.Conditions)
	assert.Equal(t, 0, p.EventBus.SubscriptionCount())

	// empty in-memory stores
	_, err := p.Bridge.CreateFromCharacter(context.Background(), "missing")
	assert.Error(t, err)
}

func TestNewProvider_SharedServices(t *testing.T) {
	ctx := context.Background()
	chars := characters.NewInMemoryRepository()
	fighter := testutils.CreateTestFighter("fighter-1")
	require.NoError(t, chars.Create(ctx, fighter))

	roller := mockdice.NewManualMockRoller()
	p := services.NewProvider(&services.ProviderConfig{
		CharacterRepository: chars,
		MonsterRepository:   monsters.NewInMemoryRepository(testutils.CreateTestGoblin()),
		DiceRoller:          roller,
		SubscribeTriggers:   true,
	})
	defer p.EventBus.Close()

	assert.Equal(t, 3, p.EventBus.SubscriptionCount())

	_, err := bridge.Populate(ctx, p.Bridge, &bridge.CreateInput{
		CharacterIDs: []string{fighter.ID},
		Monsters:     []bridge.MonsterInstance{{MonsterID: "goblin"}},
	})
	require.NoError(t, err)

	_, err = p.Ability.InitializeCharacterFeatures(fighter.ID, fighter.Class, fighter.Level)
	require.NoError(t, err)

	roller.SetNextRoll(5)
	result, err := p.Ability.ActivateFeature(ctx, &ability.ActivateInput{CharacterID: fighter.ID, FeatureID: "second_wind"})
	require.NoError(t, err)
	require.True(t, result.Success, result.Reason)

	snap, ok := p.Bridge.GetEntityData(fighter.ID)
	require.True(t, ok)
	assert.Greater(t, snap.Health.Current, 20)
}
