package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/observability"
)

// Result is the outcome of one Run.
type Result struct {
	Schedule    domain.Schedule
	Makespan    int64
	Generations int
	Elapsed     time.Duration
}

const msPerNanosecond = int64(time.Millisecond)

// budgetMillis scales the wall-clock search budget with graph size (spec
// §9): 60 seconds at 50000 ops, floored so small graphs still get a
// meaningful number of generations.
func budgetMillis(numOps int, floor int64) int64 {
	ms := int64(60000) * int64(numOps) / 50000
	if ms < floor {
		ms = floor
	}
	return ms
}

func scheduleEqual(a, b domain.Schedule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Run executes the generational GA search of spec §4.8 to completion (time
// budget exhausted or early-stop triggered) and returns the best schedule
// found. A card count of zero (or fewer), or an empty graph, is treated as
// a degenerate configuration: Run returns an empty schedule and a zero
// makespan without error, rather than attempting to search a space with no
// valid moves. tracer may be nil, in which case no spans are recorded.
func Run(ctx context.Context, g *domain.Graph, cardCount int, cfg Config, seed int64, tracer *observability.Tracer) (Result, error) {
	n := g.NumOps()
	if cardCount <= 0 || n == 0 {
		return Result{Schedule: domain.Schedule{}}, nil
	}
	if tracer == nil {
		tracer = observability.NewTracer(observability.TracerConfig{Enabled: false})
	}

	cfg = cfg.normalized()
	rng := rand.New(rand.NewSource(seed))
	start := time.Now()
	budget := budgetMillis(n, cfg.BudgetFloorMS)

	population := InitializePopulation(g, cardCount, cfg, rng)
	fitness := EvaluateFitness(population, g, cardCount, "initial")

	target := fitness[0] // deterministic greedy seed, per InitializePopulation's contract
	earlyStopThreshold := int64(float64(target) * 0.9)

	bestIdx := argBest(fitness)
	best := population[bestIdx].Clone()
	bestFitness := fitness[bestIdx]

	generations := 0
	for {
		elapsedMS := time.Since(start).Nanoseconds() / msPerNanosecond
		if elapsedMS >= budget {
			break
		}
		if cfg.EarlyStopEnabled && bestFitness <= earlyStopThreshold {
			break
		}

		_, stddev := fitnessStats(fitness)
		observability.PopulationFitnessStddev.Set(stddev)

		k := adaptiveTournamentSize(cfg.TournamentK, fitness, elapsedMS, budget)

		span := tracer.StartSpan(ctx, "ga.generation", map[string]string{
			"generation": fmt.Sprintf("%d", generations),
		})
		nextPop, nextFitness := nextGeneration(population, fitness, g, cardCount, cfg, k, rng)

		population, fitness = nextPop, nextFitness
		generations++

		idx := argBest(fitness)
		if fitness[idx] < bestFitness {
			bestFitness = fitness[idx]
			best = population[idx].Clone()
		}

		if span.Attrs != nil {
			span.Attrs["generations"] = fmt.Sprintf("%d", generations)
			span.Attrs["elapsed_ms"] = fmt.Sprintf("%d", time.Since(start).Milliseconds())
			span.Attrs["best_fitness"] = fmt.Sprintf("%d", bestFitness)
		}
		tracer.EndSpan(span, nil)
		observability.GenerationsTotal.Inc()
	}

	observability.BestMakespan.Set(float64(bestFitness))
	observability.RunDuration.Observe(time.Since(start).Seconds())

	return Result{
		Schedule:    best,
		Makespan:    bestFitness,
		Generations: generations,
		Elapsed:     time.Since(start),
	}, nil
}

// nextGeneration produces one full generation: the top two individuals
// survive unconditionally (elitism), and the rest are filled by
// tournament-selected crossover, optionally mutated. A child identical by
// value to one of its parents reuses that parent's already-known fitness
// instead of being re-evaluated.
func nextGeneration(population []domain.Schedule, fitness []int64, g *domain.Graph, cardCount int, cfg Config, k int, rng *rand.Rand) ([]domain.Schedule, []int64) {
	popSize := len(population)
	nextPop := make([]domain.Schedule, popSize)
	nextFitness := make([]int64, popSize)
	known := make([]bool, popSize)

	e1, e2 := topTwo(fitness)
	nextPop[0], nextFitness[0], known[0] = population[e1].Clone(), fitness[e1], true
	nextPop[1], nextFitness[1], known[1] = population[e2].Clone(), fitness[e2], true

	for i := 2; i < popSize; i++ {
		ia := tournamentSelect(fitness, k, rng)
		ib := tournamentSelect(fitness, k, rng)
		parentA, parentB := population[ia], population[ib]

		child := Crossover(parentA, parentB, g, cardCount, cfg, rng)

		var cachedFitness int64
		hasCached := false
		switch {
		case scheduleEqual(child, parentA):
			cachedFitness, hasCached = fitness[ia], true
		case scheduleEqual(child, parentB):
			cachedFitness, hasCached = fitness[ib], true
		}

		if rng.Float64() < cfg.MutationRate {
			child = Mutate(child, g, cardCount, cfg, rng)
			hasCached = false
		}

		nextPop[i] = child
		if hasCached {
			nextFitness[i] = cachedFitness
			known[i] = true
		}
	}

	unresolved := make([]int, 0, popSize)
	for i, ok := range known {
		if !ok {
			unresolved = append(unresolved, i)
		}
	}
	if len(unresolved) > 0 {
		batch := make([]domain.Schedule, len(unresolved))
		for j, i := range unresolved {
			batch[j] = nextPop[i]
		}
		batchFitness := EvaluateFitness(batch, g, cardCount, "generation")
		for j, i := range unresolved {
			nextFitness[i] = batchFitness[j]
		}
	}

	return nextPop, nextFitness
}

func argBest(fitness []int64) int {
	best := 0
	for i, f := range fitness {
		if f < fitness[best] {
			best = i
		}
	}
	return best
}

// topTwo returns the indices of the two lowest fitness values, in no
// particular relative order between themselves.
func topTwo(fitness []int64) (int, int) {
	idx := make([]int, len(fitness))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return fitness[idx[a]] < fitness[idx[b]] })
	if len(idx) == 1 {
		return idx[0], idx[0]
	}
	return idx[0], idx[1]
}
