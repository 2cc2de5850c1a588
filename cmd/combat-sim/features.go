package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/combat-engine/internal/domain/features"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

var (
	featureClass string
	featureLevel int
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the features a class has at a level",
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().StringVar(&featureClass, "class", "fighter", "Class to list")
	featuresCmd.Flags().IntVar(&featureLevel, "level", 1, "Character level")
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	catalog := features.Default()
	if !catalog.HasClass(featureClass) {
		return dnderr.NotFoundf("unknown class '%s' (known: %v)", featureClass, catalog.Classes())
	}

	out := cmd.OutOrStdout()
	defs := catalog.ForClass(featureClass, featureLevel)
	fmt.Fprintf(out, "%s level %d: %d features\n\n", featureClass, featureLevel, len(defs))

	for _, def := range defs {
		fmt.Fprintf(out, "%-24s L%-2d %-9s", def.ID, def.MinLevel, def.Activation)
		if def.ActionCost != "" {
			fmt.Fprintf(out, " cost=%s", def.ActionCost)
		}
		if def.Resource != nil {
			fmt.Fprintf(out, " uses=%d/%s", def.Resource.Max, def.Resource.ResetOn)
		}
		for _, t := range def.Triggers {
			fmt.Fprintf(out, " on=%s", t.Event)
			if t.Condition != "" {
				fmt.Fprintf(out, "(%s)", t.Condition)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
