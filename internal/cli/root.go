// Package cli implements the eo command-line interface: run, serve, and
// validate.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "eo",
	Short: "A genetic-algorithm scheduler for DAGs of operators across accelerator cards",
	Long: `eo assigns operators in a DAG to a fixed number of accelerator cards,
minimizing makespan under a serial per-card execution and inbound-transfer
timeline. It searches with a time-budgeted genetic algorithm seeded from
several list-scheduling heuristics (greedy EFT, HEFT upward rank).`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults apply if omitted)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
