package constructors

import (
	"math/rand"

	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/dsa"
	"github.com/zhenglier/eo/internal/infra/schedsim"
)

const (
	greedyEpsilon    = 0.2
	greedyTopK       = 3
	greedyNoiseRatio = 0.05
)

// BuildGreedyIndividual is the online list scheduler of spec §4.5: at
// every step it considers the full ready-op × card cross product, scores
// each candidate by simulated end time, and picks one.
//
// The deterministic variant always picks the global minimum. The
// randomized variant perturbs every score by up to ±5% and then applies
// ε-greedy selection: with probability 0.2 it picks uniformly among the
// top 3 perturbed candidates, otherwise it takes the best of them.
func BuildGreedyIndividual(g *domain.Graph, cardCount int, rng *rand.Rand, randomized bool) domain.Schedule {
	n := g.NumOps()
	inDegree, succ := BuildAdjacency(g)

	ready := make([]int32, 0, n)
	for i, d := range inDegree {
		if d == 0 {
			ready = append(ready, int32(i))
		}
	}

	st := schedsim.NewState(n, cardCount)
	schedule := make(domain.Schedule, 0, n)

	k := 1
	if randomized {
		k = greedyTopK
	}

	for len(ready) > 0 {
		tk := dsa.NewTopK(k)
		for _, op := range ready {
			for c := int32(0); c < int32(cardCount); c++ {
				pl := st.Simulate(g, op, c)
				score := float64(pl.FinishTime)
				if randomized {
					score += (rng.Float64()*2 - 1) * greedyNoiseRatio * score
				}
				tk.Offer(dsa.Candidate{Score: score, OpID: op, CardID: c})
			}
		}

		items := tk.Items()
		var chosen dsa.Candidate
		if randomized && rng.Float64() < greedyEpsilon {
			chosen = items[rng.Intn(len(items))]
		} else {
			chosen = items[0]
		}

		pl := st.Simulate(g, chosen.OpID, chosen.CardID)
		st.Commit(chosen.OpID, chosen.CardID, pl)
		schedule = append(schedule, domain.Entry{OpID: chosen.OpID, CardID: chosen.CardID})

		ready = removeOp(ready, chosen.OpID)
		for _, s := range succ[chosen.OpID] {
			inDegree[s]--
			if inDegree[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	if len(schedule) != n {
		return domain.Schedule{}
	}
	return schedule
}

func removeOp(ready []int32, op int32) []int32 {
	for i, v := range ready {
		if v == op {
			last := len(ready) - 1
			ready[i] = ready[last]
			return ready[:last]
		}
	}
	return ready
}
