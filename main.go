package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wecare/foodcheck/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foodcheck",
		Short: "Food product analysis: allergens, diets, and quality scoring",
		Long: `foodcheck analyzes a food product record and reports allergen matches,
diet compatibility, and a 0-100 quality score with nutrition and additive
sub-scores.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewFetchCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("foodcheck version %s\n", version)
		},
	}
}
