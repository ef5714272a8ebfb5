package constructors

import (
	"math/rand"

	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/dsa"
)

// TopoByPriority performs Kahn-style topological emission driven by a
// priority function (lower priority value scheduled earlier, ties broken
// by ascending op id — spec §4.3). Card assignment is inherit_cards[op]
// when present (inheritCards[op] >= 0), otherwise a uniform random card.
//
// Returns an empty schedule if the graph is not a DAG (fewer than NumOps
// entries were emitted), signaling CycleOrIncomplete to the caller.
func TopoByPriority(g *domain.Graph, cardCount int, priority []float64, inheritCards []int32, rng *rand.Rand) domain.Schedule {
	n := g.NumOps()
	inDegree, succ := BuildAdjacency(g)

	ready := dsa.NewReadyHeap(n)
	for i, d := range inDegree {
		if d == 0 {
			ready.Push(dsa.ReadyItem{OpID: int32(i), Priority: priority[i]})
		}
	}

	schedule := make(domain.Schedule, 0, n)
	for {
		item, ok := ready.Pop()
		if !ok {
			break
		}
		op := item.OpID

		var card int32
		if inheritCards != nil && inheritCards[op] >= 0 {
			card = inheritCards[op]
		} else {
			card = int32(rng.Intn(cardCount))
		}
		schedule = append(schedule, domain.Entry{OpID: op, CardID: card})

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
