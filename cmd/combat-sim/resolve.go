package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

var (
	resolveAmount     int
	resolveType       string
	resolveResist     []string
	resolveConditions []string
	resolveCreature   string
	resolveMaxHP      int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve one damage instance against a defense profile",
	Example: `  combat-sim resolve --amount 12 --type slashing --condition rage_bear
  combat-sim resolve --amount 10 --type fire --resist fire:immunity
  combat-sim resolve --amount 9 --type slashing --resist all:numeric:3`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().IntVar(&resolveAmount, "amount", 0, "Incoming damage")
	resolveCmd.Flags().StringVar(&resolveType, "type", "bludgeoning", "Damage type")
	resolveCmd.Flags().StringSliceVar(&resolveResist, "resist", nil, "Resistance entries as match[:effect[:value]]")
	resolveCmd.Flags().StringSliceVar(&resolveConditions, "condition", nil, "Active conditions on the defender")
	resolveCmd.Flags().StringVar(&resolveCreature, "creature-type", "", "Defender creature type")
	resolveCmd.Flags().IntVar(&resolveMaxHP, "max-hp", 0, "Defender max HP, enables the severity label")
}

func runResolve(cmd *cobra.Command, _ []string) error {
	damageType, ok := damage.ParseType(resolveType)
	if !ok {
		return dnderr.InvalidArgumentf("unknown damage type '%s'", resolveType)
	}

	profile := &damage.DefenseProfile{
		Conditions:   resolveConditions,
		CreatureType: resolveCreature,
		Health:       damage.HealthSnapshot{Current: resolveMaxHP, Max: resolveMaxHP},
	}
	for _, raw := range resolveResist {
		entry, err := parseResistance(raw)
		if err != nil {
			return err
		}
		profile.Resistances = append(profile.Resistances, entry)
	}

	res := damage.ResolveOne(damage.Instance{Amount: resolveAmount, Type: damageType, Source: "cli"}, profile)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d %s -> %d\n", resolveAmount, damageType, res.Total)
	for _, m := range res.Modifications {
		fmt.Fprintf(out, "  %-18s %3d -> %3d  %s\n", m.Kind, m.Before, m.After, m.Description)
	}
	if resolveMaxHP > 0 {
		fmt.Fprintf(out, "severity: %s\n", damage.ClassifySeverity(res.Total, resolveMaxHP).Label())
	}
	return nil
}

// parseResistance reads "fire", "fire:immunity" or "all:numeric:3"
func parseResistance(raw string) (damage.Resistance, error) {
	parts := strings.Split(raw, ":")
	entry := damage.Resistance{Match: strings.ToLower(strings.TrimSpace(parts[0])), Effect: damage.EffectResistance, Label: "cli"}
	if entry.Match == "" {
		return entry, dnderr.InvalidArgumentf("resistance '%s' has no match", raw)
	}

	if len(parts) > 1 {
		entry.Effect = damage.Effect(strings.ToLower(parts[1]))
		switch entry.Effect {
		case damage.EffectImmunity, damage.EffectResistance, damage.EffectVulnerability, damage.EffectNumeric:
		default:
			return entry, dnderr.InvalidArgumentf("unknown resistance effect '%s'", parts[1])
		}
	}
	if len(parts) > 2 {
		value, err := strconv.Atoi(parts[2])
		if err != nil {
			return entry, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "resistance value must be a number")
		}
		entry.Value = value
	}
	return entry, nil
}
