package ga

import (
	"math/rand"

	"github.com/zhenglier/eo/internal/app/constructors"
	"github.com/zhenglier/eo/internal/domain"
)

// InitializePopulation builds the GA's initial generation (spec §4.8):
//
//  0. one deterministic Greedy-EFT individual — this is also the fitness
//     target the early-stop heuristic compares against, so it MUST be
//     index 0.
//  1. one EFT individual seeded by longest-exec-first priority.
//  2. one EFT individual seeded by HEFT upward rank (−rank_u, largest
//     rank scheduled first).
//  3. one EFT individual seeded by uniform-random priority, additive
//     diversity carried over from the original implementation (spec_full
//     §9 supplement).
//  4. the remainder via TopoByPriority with heuristic priority
//     −(exec_cost + 0.5·transfer_cost) plus small noise, each optionally
//     refined at cfg.ConstructRefineRatio.
func InitializePopulation(g *domain.Graph, cardCount int, cfg Config, rng *rand.Rand) []domain.Schedule {
	cfg = cfg.normalized()
	n := g.NumOps()
	pop := make([]domain.Schedule, 0, cfg.PopSize)

	pop = append(pop, constructors.BuildGreedyIndividual(g, cardCount, rng, false))

	longestExecFirst := make([]float64, n)
	for i := 0; i < n; i++ {
		longestExecFirst[i] = -float64(g.ExecCost[i])
	}
	pop = append(pop, constructors.TopoByPriorityWithEFT(g, cardCount, longestExecFirst, constructors.NoInherit(n)))

	rankU := constructors.UpwardRank(g)
	heftPriority := make([]float64, n)
	for i, r := range rankU {
		heftPriority[i] = -r
	}
	pop = append(pop, constructors.TopoByPriorityWithEFT(g, cardCount, heftPriority, constructors.NoInherit(n)))

	uniformPriority := make([]float64, n)
	for i := 0; i < n; i++ {
		uniformPriority[i] = rng.Float64()
	}
	pop = append(pop, constructors.TopoByPriorityWithEFT(g, cardCount, uniformPriority, constructors.NoInherit(n)))

	for len(pop) < cfg.PopSize {
		priority := make([]float64, n)
		for i := 0; i < n; i++ {
			priority[i] = -(float64(g.ExecCost[i]) + 0.5*float64(g.TransferCost[i])) + rng.Float64()*1e-6
		}
		ind := constructors.TopoByPriority(g, cardCount, priority, constructors.NoInherit(n), rng)
		if len(ind) == n && cfg.ConstructRefineRatio > 0 {
			ind = constructors.RefineCardsByEFT(ind, g, cardCount, cfg.ConstructRefineRatio, rng)
		}
		pop = append(pop, ind)
	}

	return pop
}
