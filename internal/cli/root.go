// Package cli implements the zero2one command-line interface using Cobra.
// Each subcommand maps to one engine operation (status, task, jobs, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zero2one",
	Short: "zero2one — level up your real life",
	Long: `zero2one is a personal progression tracker.
Complete tasks to grow six attributes, climb ranks from E to SSS, keep
streaks alive, ride random events, and unlock achievements and jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
