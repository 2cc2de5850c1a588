package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/combat-engine/internal/config"
	"github.com/KirkDiggler/combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/events"
	"github.com/KirkDiggler/combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/combat-engine/internal/services"
	"github.com/KirkDiggler/combat-engine/internal/services/ability"
	"github.com/KirkDiggler/combat-engine/internal/services/bridge"
)

const demoActor = "combat-sim"

var demoTimeout time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted encounter against the configured stores",
	Long: `demo seeds a fighter, a bear totem barbarian and a rogue, spawns two goblins and a skeleton,
then walks through second wind, rage and sneak attack before syncing hit points back to the store.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&demoTimeout, "timeout", 30*time.Second, "Overall timeout")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), demoTimeout)
	defer cancel()

	st, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.cleanup()

	roster := demoRoster()
	for _, char := range roster {
		if err := seedCharacter(ctx, st.characters, char); err != nil {
			return err
		}
	}

	provider := services.NewProvider(&services.ProviderConfig{
		CharacterRepository: st.characters,
		MonsterRepository:   st.monsters,
		AutoSync:            cfg.AutoSync,
		SyncConcurrency:     cfg.SyncConcurrency,
		ActorID:             demoActor,
	})
	defer provider.EventBus.Close()
	logEvents(provider.EventBus)

	entities, engine := provider.Bridge, provider.Ability

	input := &bridge.CreateInput{
		Monsters: []bridge.MonsterInstance{
			{MonsterID: "goblin", InstanceName: "a"},
			{MonsterID: "goblin", InstanceName: "b"},
			{MonsterID: "skeleton"},
		},
	}
	for _, char := range roster {
		input.CharacterIDs = append(input.CharacterIDs, char.ID)
	}
	if _, err := bridge.Populate(ctx, entities, input); err != nil {
		return dnderr.Wrap(err, "failed to populate encounter")
	}

	for _, char := range roster {
		if _, err := engine.InitializeCharacterFeatures(char.ID, char.Class, char.Level); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if err := playEncounter(ctx, out, entities, engine); err != nil {
		return err
	}

	fmt.Fprintln(out, "== Encounter")
	for _, ref := range entities.Entities() {
		snap, ok := entities.GetEntityData(ref)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-22s %-9s %3d/%-3d %v\n", snap.Ref, snap.Kind, snap.Health.Current, snap.Health.Max, snap.Conditions)
	}
	return nil
}

// playEncounter runs the scripted turns against a populated encounter and syncs hit points back
func playEncounter(ctx context.Context, out io.Writer, entities bridge.Service, engine ability.Service) error {
	goblin := bridge.InstanceKey("goblin", "a")

	fmt.Fprintln(out, "== Second Wind")
	result, err := engine.ActivateFeature(ctx, &ability.ActivateInput{CharacterID: "demo-fighter", FeatureID: "second_wind"})
	if err != nil {
		return err
	}
	printResult(out, result)

	fmt.Fprintln(out, "== Rage (bear totem)")
	result, err = engine.ActivateFeature(ctx, &ability.ActivateInput{CharacterID: "demo-barbarian", FeatureID: "rage"})
	if err != nil {
		return err
	}
	printResult(out, result)

	if profile, ok := engine.DefenseProfile("demo-barbarian"); ok {
		for _, t := range []damage.Type{damage.TypeSlashing, damage.TypePsychic} {
			res := damage.ResolveOne(damage.Instance{Amount: 12, Type: t, Source: "goblin scimitar"}, profile)
			fmt.Fprintf(out, "  12 %s -> %d\n", t, res.Total)
			entities.ApplyDamage(ctx, "demo-barbarian", res.Total, t)
		}
	}

	fmt.Fprintln(out, "== Sneak Attack")
	results, err := engine.ProcessTriggers(ctx, &ability.TriggerInput{
		CharacterID: "demo-rogue",
		Event:       features.TriggerOnHit,
		TargetIDs:   []string{goblin},
		Context:     map[string]any{ability.ContextDamageType: string(damage.TypePiercing)},
	})
	if err != nil {
		return err
	}
	for _, r := range results {
		printResult(out, r)
	}

	for _, ref := range entities.Entities() {
		engine.ResetActionEconomy(ref)
	}

	if err := entities.SyncAllToServices(ctx); err != nil {
		return dnderr.Wrap(err, "failed to sync characters")
	}
	return nil
}

func demoRoster() []*characters.Character {
	scores := func() map[combat.Ability]int {
		return map[combat.Ability]int{
			combat.AbilityStrength:     16,
			combat.AbilityDexterity:    14,
			combat.AbilityConstitution: 15,
			combat.AbilityIntelligence: 10,
			combat.AbilityWisdom:       12,
			combat.AbilityCharisma:     8,
		}
	}

	return []*characters.Character{
		{
			ID: "demo-fighter", OwnerID: demoActor, Name: "Brakka", Class: "fighter", Level: 2,
			HitPoints:     characters.HitPoints{Current: 14, Max: 30},
			AbilityScores: scores(), ProficiencyBonus: 2, ArmorClass: 16, Speed: 30,
		},
		{
			ID: "demo-barbarian", OwnerID: demoActor, Name: "Ulfgar", Class: "barbarian", Level: 3,
			HitPoints:     characters.HitPoints{Current: 35, Max: 35},
			AbilityScores: scores(), ProficiencyBonus: 2, ArmorClass: 14, Speed: 40,
		},
		{
			ID: "demo-rogue", OwnerID: demoActor, Name: "Vex", Class: "rogue", Level: 5,
			HitPoints:     characters.HitPoints{Current: 33, Max: 33},
			AbilityScores: scores(), ProficiencyBonus: 3, ArmorClass: 15, Speed: 30,
		},
	}
}

// seedCharacter creates the character, or resets its hit points when a
// persistent store already has it from an earlier run
func seedCharacter(ctx context.Context, repo characters.Repository, char *characters.Character) error {
	err := repo.Create(ctx, char)
	if err == nil {
		return nil
	}
	if !dnderr.IsAlreadyExists(err) {
		return dnderr.Wrapf(err, "failed to seed character %s", char.ID)
	}

	hp := char.HitPoints
	if _, err := repo.Update(ctx, char.ID, demoActor, &characters.Update{HitPoints: &hp}); err != nil {
		return dnderr.Wrapf(err, "failed to reset character %s", char.ID)
	}
	return nil
}

func logEvents(bus *events.Bus) {
	for _, name := range []string{events.AfterTakeDamage, events.HealingReceived, events.ConditionApplied, events.AbilityActivated} {
		bus.Subscribe(name, 100, func(_ context.Context, e rpgevents.Event) error {
			target := "-"
			if e.Target() != nil {
				target = e.Target().GetID()
			}
			amount, _ := events.IntValue(e, events.KeyAmount)
			log.Printf("[EVENTS] %s target=%s amount=%d", name, target, amount)
			return nil
		})
	}
}

func printResult(out io.Writer, r *ability.ActivationResult) {
	if !r.Success {
		fmt.Fprintf(out, "  %s failed: %s\n", r.FeatureID, r.Reason)
		return
	}
	fmt.Fprintf(out, "  %s\n", r.Message)
	for _, effect := range r.Effects {
		fmt.Fprintf(out, "    %s -> %s: %s\n", effect.Kind, effect.TargetID, effect.Message)
	}
}
