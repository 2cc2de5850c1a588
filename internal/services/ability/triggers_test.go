package ability_test

import (
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/services/ability"
	"github.com/KirkDiggler/combat-engine/internal/testutils"
)

func (s *AbilityTestSuite) rogue(id string, level int) *characters.Character {
	char := testutils.CreateTestCharacter(id, "owner-1", "Vex")
	char.Class = "rogue"
	char.Level = level
	return char
}

func (s *AbilityTestSuite) survivor(id string, current int) {
	char := testutils.CreateTestFighter(id)
	char.Level = 18
	char.HitPoints = characters.HitPoints{Current: current, Max: 30}
	s.join(char)
}

func (s *AbilityTestSuite) TestProcessTriggers_SneakAttackOncePerTurn() {
	s.join(s.rogue("rogue-1", 5))
	goblin := s.spawn("goblin", "a")
	skeleton := s.spawn("skeleton", "b")

	hit := &ability.TriggerInput{
		CharacterID: "rogue-1",
		Event:       features.TriggerOnHit,
		TargetIDs:   []string{goblin},
		Context:     map[string]any{ability.ContextDamageType: "piercing"},
	}

	s.roller.SetRolls([]int{1, 2, 1})
	results, err := s.svc.ProcessTriggers(s.ctx, hit)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Require().True(results[0].Success, results[0].Reason)

	effect := results[0].Effects[0]
	s.Equal(goblin, effect.TargetID)
	s.Equal(4, effect.Resolution.Total)
	s.Equal(&ability.SneakAttackPayload{Dice: "3d6"}, effect.Payload)
	s.Equal(3, s.health(goblin).Current)

	// second hit in the same turn doesn't fire
	hit.TargetIDs = []string{skeleton}
	results, err = s.svc.ProcessTriggers(s.ctx, hit)
	s.Require().NoError(err)
	s.Empty(results)

	s.Require().True(s.svc.ResetActionEconomy("rogue-1"))

	s.roller.SetRolls([]int{1, 1, 1})
	results, err = s.svc.ProcessTriggers(s.ctx, hit)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.True(results[0].Success)
}

func (s *AbilityTestSuite) TestProcessTriggers_FailedActivationDoesNotUseTheTurn() {
	s.join(s.rogue("rogue-1", 1))
	goblin := s.spawn("goblin", "a")

	// no target: rejected, so the once-per-turn slot stays open
	results, err := s.svc.ProcessTriggers(s.ctx, &ability.TriggerInput{CharacterID: "rogue-1", Event: features.TriggerOnHit})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.False(results[0].Success)
	s.Equal(ability.ReasonTargetNotFound, results[0].Reason)

	s.roller.SetRolls([]int{6})
	results, err = s.svc.ProcessTriggers(s.ctx, &ability.TriggerInput{
		CharacterID: "rogue-1",
		Event:       features.TriggerOnHit,
		TargetIDs:   []string{goblin},
	})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.True(results[0].Success)
	s.Equal(1, s.health(goblin).Current)
}

func (s *AbilityTestSuite) TestProcessTriggers_BelowHalfPredicate() {
	s.survivor("fighter-18", 10)

	results, err := s.svc.ProcessTriggers(s.ctx, &ability.TriggerInput{CharacterID: "fighter-18", Event: features.TriggerTurnStart})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("survivor", results[0].FeatureID)
	s.Equal(15, s.health("fighter-18").Current)

	// exactly half is bloodied but not below half
	s.survivor("fighter-half", 15)
	results, err = s.svc.ProcessTriggers(s.ctx, &ability.TriggerInput{CharacterID: "fighter-half", Event: features.TriggerTurnStart})
	s.Require().NoError(err)
	s.Empty(results)
	s.Equal(15, s.health("fighter-half").Current)
}

func (s *AbilityTestSuite) TestProcessTriggers_OtherEventsIgnored() {
	s.survivor("fighter-18", 5)

	results, err := s.svc.ProcessTriggers(s.ctx, &ability.TriggerInput{CharacterID: "fighter-18", Event: features.TriggerOnDamageTaken})
	s.Require().NoError(err)
	s.Empty(results)
	s.Equal(5, s.health("fighter-18").Current)
}

func (s *AbilityTestSuite) TestProcessTriggers_Errors() {
	_, err := s.svc.ProcessTriggers(s.ctx, nil)
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.ProcessTriggers(s.ctx, &ability.TriggerInput{CharacterID: "nobody", Event: features.TriggerTurnStart})
	s.True(dnderr.IsNotFound(err))
}

func (s *AbilityTestSuite) TestSubscribeTriggers_TurnStartEvent() {
	s.survivor("fighter-18", 8)
	goblin := s.spawn("goblin", "a")

	bus := events.NewBus()
	defer bus.Close()

	ids := s.svc.SubscribeTriggers(bus)
	s.Len(ids, 3)
	s.Equal(3, bus.SubscriptionCount())

	target := events.EntityRef{ID: "fighter-18", Kind: string(combat.KindCharacter)}
	s.Require().NoError(bus.Publish(s.ctx, events.TurnStart, nil, target, nil))
	s.Equal(13, s.health("fighter-18").Current)

	// monsters have no features to trigger
	monster := events.EntityRef{ID: goblin, Kind: string(combat.KindMonster)}
	s.Require().NoError(bus.Publish(s.ctx, events.TurnStart, nil, monster, nil))
	s.Equal(7, s.health(goblin).Current)

	s.Nil(s.svc.SubscribeTriggers(nil))
}

func (s *AbilityTestSuite) TestSubscribeTriggers_AttackHitEvent() {
	s.join(s.rogue("rogue-1", 1))
	goblin := s.spawn("goblin", "a")

	bus := events.NewBus()
	defer bus.Close()
	s.svc.SubscribeTriggers(bus)

	s.roller.SetRolls([]int{5})
	attacker := events.EntityRef{ID: "rogue-1", Kind: string(combat.KindCharacter)}
	target := events.EntityRef{ID: goblin, Kind: string(combat.KindMonster)}
	s.Require().NoError(bus.Publish(s.ctx, events.AttackHit, attacker, target, map[string]any{
		events.KeyDamageType: "piercing",
	}))

	s.Equal(2, s.health(goblin).Current)
	s.Equal(0, s.roller.Remaining())
}
