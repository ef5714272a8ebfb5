package constructors

import (
	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/dsa"
)

// UpwardRank computes the HEFT upward rank of every operator (spec §4.7):
//
//	rank_u(n) = exec_cost(n) + max_{s in succ(n)} (transfer_cost(n) + rank_u(s))
//
// with rank_u(n) = exec_cost(n) for sinks. Used to seed one priority-based
// initial GA individual with priority = -rank_u (largest rank scheduled
// first).
func UpwardRank(g *domain.Graph) []float64 {
	n := g.NumOps()
	inDegree, succ := BuildAdjacency(g)

	order := make([]int32, 0, n)
	ready := dsa.NewReadyHeap(n)
	degree := append([]int32(nil), inDegree...)
	for i, d := range degree {
		if d == 0 {
			ready.Push(dsa.ReadyItem{OpID: int32(i), Priority: float64(i)})
		}
	}
	for {
		item, ok := ready.Pop()
		if !ok {
			break
		}
		order = append(order, item.OpID)
		for _, s := range succ[item.OpID] {
			degree[s]--
			if degree[s] == 0 {
				ready.Push(dsa.ReadyItem{OpID: s, Priority: float64(s)})
			}
		}
	}

	rank := make([]float64, n)
	for i := len(order) - 1; i >= 0; i-- {
		op := order[i]
		var best float64
		for _, s := range succ[op] {
			v := float64(g.TransferCost[op]) + rank[s]
			if v > best {
				best = v
			}
		}
		rank[op] = float64(g.ExecCost[op]) + best
	}
	return rank
}
