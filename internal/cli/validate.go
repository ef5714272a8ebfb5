package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhenglier/eo/internal/app/eval"
	"github.com/zhenglier/eo/internal/infra/parse"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate GRAPH_FILE SCHEDULE_FILE",
	Short: "Check a schedule against a graph and print its makespan",
	Long: `validate strictly re-simulates SCHEDULE_FILE against GRAPH_FILE: every
operator must appear exactly once, every producer must have already run
when its consumer is reached, and every id must be in range. Exits 0 and
prints the makespan on success, exits 1 and prints the failure otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	graphFile, scheduleFile := args[0], args[1]

	gf, err := os.Open(graphFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", graphFile, err)
	}
	defer gf.Close()
	parsed, err := parse.Parse(gf)
	if err != nil {
		return err
	}

	sf, err := os.Open(scheduleFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", scheduleFile, err)
	}
	defer sf.Close()
	schedule, err := parse.ParseSchedule(sf)
	if err != nil {
		return err
	}

	makespan, err := eval.ValidateAndMakespan(schedule, parsed.Graph, parsed.CardCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid schedule: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "valid, makespan = %d\n", makespan)
	return nil
}
