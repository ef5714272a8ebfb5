package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhenglier/eo/internal/app/eval"
	"github.com/zhenglier/eo/internal/app/ga"
	"github.com/zhenglier/eo/internal/infra/config"
	"github.com/zhenglier/eo/internal/infra/parse"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "RNG seed (0 or omitted uses the config file's seed, else the wall clock)")
}

var runSeed int64

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Schedule the graph in FILE and print the best makespan found",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := parse.Parse(f)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := runSeed
	if seed == 0 {
		seed = config.ResolveSeed(cfg.Seed)
	}

	start := time.Now()
	result, err := ga.Run(context.Background(), parsed.Graph, parsed.CardCount, cfg.GA, seed, nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	makespan, verr := eval.ValidateAndMakespan(result.Schedule, parsed.Graph, parsed.CardCount)
	if verr != nil {
		fmt.Fprintf(os.Stderr, "solver produced an invalid schedule: %v\n", verr)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "%s\n", path)
	fmt.Fprintf(os.Stdout, "wall time: %s\n", elapsed)
	fmt.Fprintf(os.Stdout, "generations: %d\n", result.Generations)
	fmt.Fprintf(os.Stdout, "makespan: %d\n", makespan)
	return nil
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configPath)
}
