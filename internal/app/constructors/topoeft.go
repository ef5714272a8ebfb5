package constructors

import (
	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/dsa"
	"github.com/zhenglier/eo/internal/infra/schedsim"
)

// TopoByPriorityWithEFT uses the same Kahn emission order as TopoByPriority
// but chooses each op's card by simulated earliest finish time, probing
// every card against the running construction state (spec §4.4). Ties
// prefer the inherited card if any, otherwise the lowest card id.
//
// This constructor doubles as the crossover-child builder (package ga) and
// as the quality-biased seeder of the initial GA population.
func TopoByPriorityWithEFT(g *domain.Graph, cardCount int, priority []float64, inheritCards []int32) domain.Schedule {
	n := g.NumOps()
	inDegree, succ := BuildAdjacency(g)

	ready := dsa.NewReadyHeap(n)
	for i, d := range inDegree {
		if d == 0 {
			ready.Push(dsa.ReadyItem{OpID: int32(i), Priority: priority[i]})
		}
	}

	st := schedsim.NewState(n, cardCount)
	schedule := make(domain.Schedule, 0, n)

	for {
		item, ok := ready.Pop()
		if !ok {
			break
		}
		op := item.OpID

		var inherited int32 = -1
		if inheritCards != nil {
			inherited = inheritCards[op]
		}

		bestCard, bestPlacement := bestEFTCard(g, st, op, cardCount, inherited)
		st.Commit(op, bestCard, bestPlacement)
		schedule = append(schedule, domain.Entry{OpID: op, CardID: bestCard})

		for _, s := range succ[op] {
			inDegree[s]--
			if inDegree[s] == 0 {
				ready.Push(dsa.ReadyItem{OpID: s, Priority: priority[s]})
			}
		}
	}

	if len(schedule) != n {
		return domain.Schedule{}
	}
	return schedule
}

// bestEFTCard probes every card for opID against st (without mutating it)
// and returns the card minimizing finish time. Among cards tied for the
// minimum, the inherited card wins if it is among them, otherwise the
// lowest card id wins.
func bestEFTCard(g *domain.Graph, st *schedsim.State, opID int32, cardCount int, inherited int32) (int32, schedsim.Placement) {
	var bestCard int32 = -1
	var bestFinish int64
	var bestPlacement schedsim.Placement

	for c := int32(0); c < int32(cardCount); c++ {
		pl := st.Simulate(g, opID, c)
		switch {
		case bestCard == -1, pl.FinishTime < bestFinish:
			bestCard, bestFinish, bestPlacement = c, pl.FinishTime, pl
		case pl.FinishTime == bestFinish && c == inherited:
			bestCard, bestFinish, bestPlacement = c, pl.FinishTime, pl
		}
	}
	return bestCard, bestPlacement
}
