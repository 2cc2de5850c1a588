// Package main is a command line driver for the combat engine
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "combat-sim",
	Short: "Combat rules engine simulator",
	Long:  `combat-sim resolves damage, lists class features and runs a scripted encounter against the configured stores.`,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(demoCmd)
}
