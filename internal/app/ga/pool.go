package ga

import (
	"runtime"
	"sync"

	"github.com/zhenglier/eo/internal/app/eval"
	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/observability"
)

// EvaluateFitness computes the makespan of every individual in population,
// splitting the batch into contiguous chunks processed by
// min(runtime.NumCPU(), len(population)) workers, joining once all chunks
// finish (spec §4.8 step 5 — fitness evaluation dominates generation cost,
// so it is the one step worth parallelizing). source labels the calling
// component ("initial" or "generation") on the eo_evaluator_calls_total
// counter.
func EvaluateFitness(population []domain.Schedule, g *domain.Graph, cardCount int, source string) []int64 {
	n := len(population)
	fitness := make([]int64, n)
	if n == 0 {
		return fitness
	}
	observability.EvaluatorCalls.WithLabelValues(source).Add(float64(n))

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fitness[i] = eval.Makespan(population[i], g, cardCount)
			}
		}(start, end)
	}
	wg.Wait()
	return fitness
}
