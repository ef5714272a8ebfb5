// Package ga implements the evolutionary search of spec §4.8: population,
// elitism, tournament selection, priority-based crossover, priority+card
// mutation, a wall-clock time budget, and parallel fitness evaluation.
package ga

// Config controls the GA engine. All fields have production defaults via
// DefaultConfig so callers only need to override what they care about.
type Config struct {
	// PopSize is the number of individuals per generation. The initial
	// population always holds its four seed individuals, so a PopSize
	// below 4 yields a population of 4.
	PopSize int `toml:"pop_size"`

	// MutationRate is the probability a freshly produced child is mutated.
	MutationRate float64 `toml:"mutation_rate"`

	// TournamentK is the base tournament size before adaptive scaling
	// (spec §4.8 step 2).
	TournamentK int `toml:"tournament_k"`

	// EarlyStopEnabled gates the "0.9x initial greedy" early-exit
	// heuristic (spec §9 — biases strongly toward good-enough-quickly).
	EarlyStopEnabled bool `toml:"early_stop_enabled"`

	// ConstructRefineRatio is the card-refinement ratio applied after the
	// heuristic-priority seed individuals (spec §4.8, "30%-ratio").
	ConstructRefineRatio float64 `toml:"construct_refine_ratio"`

	// CrossoverRefineRatio is the refinement ratio applied after
	// crossover (spec §4.8, "0.2-ratio").
	CrossoverRefineRatio float64 `toml:"crossover_refine_ratio"`

	// MutationRefineRatio is the refinement ratio applied after mutation
	// (spec §4.8, "0.15-ratio").
	MutationRefineRatio float64 `toml:"mutation_refine_ratio"`

	// BudgetFloorMS floors the linearly-scaled time budget so small
	// graphs don't get a degenerate sub-millisecond GA (spec §9).
	BudgetFloorMS int64 `toml:"budget_floor_ms"`
}

// DefaultConfig returns production defaults, per spec §6's documented
// ranges.
func DefaultConfig() Config {
	return Config{
		PopSize:               24,
		MutationRate:          0.35,
		TournamentK:           3,
		EarlyStopEnabled:      true,
		ConstructRefineRatio:  0.30,
		CrossoverRefineRatio:  0.20,
		MutationRefineRatio:   0.15,
		BudgetFloorMS:         100,
	}
}

func (c Config) normalized() Config {
	if c.PopSize <= 0 {
		c.PopSize = DefaultConfig().PopSize
	}
	if c.TournamentK < 2 {
		c.TournamentK = 2
	}
	if c.BudgetFloorMS <= 0 {
		c.BudgetFloorMS = DefaultConfig().BudgetFloorMS
	}
	if c.MutationRate < 0 {
		c.MutationRate = 0
	}
	if c.MutationRate > 1 {
		c.MutationRate = 1
	}
	return c
}
