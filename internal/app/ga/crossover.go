package ga

import (
	"math/rand"

	"github.com/zhenglier/eo/internal/app/constructors"
	"github.com/zhenglier/eo/internal/domain"
)

// Crossover combines two parent schedules into one child (spec §4.8 step
// 3): each op's priority is the average of its dispatch position in the
// two parents (so a child inherits "roughly where both parents scheduled
// this op", not either parent's exact order), each op's inherited card is
// a coin flip between the parents' choices, and the child is rebuilt with
// TopoByPriorityWithEFT before a light refinement pass.
//
// If rebuilding fails (TopoByPriorityWithEFT returns an empty schedule,
// which should only happen for a malformed graph), the caller should treat
// crossover as a no-op and keep parent a — Crossover signals that case by
// returning a's own clone.
func Crossover(a, b domain.Schedule, g *domain.Graph, cardCount int, cfg Config, rng *rand.Rand) domain.Schedule {
	n := g.NumOps()
	posA := positionsByOp(a, n)
	posB := positionsByOp(b, n)
	cardA := cardsByOp(a, n)
	cardB := cardsByOp(b, n)

	priority := make([]float64, n)
	inherit := make([]int32, n)
	for op := 0; op < n; op++ {
		priority[op] = (float64(posA[op]) + float64(posB[op])) / 2
		if rng.Intn(2) == 0 {
			inherit[op] = cardA[op]
		} else {
			inherit[op] = cardB[op]
		}
	}

	child := constructors.TopoByPriorityWithEFT(g, cardCount, priority, inherit)
	if len(child) != n {
		return a.Clone()
	}

	cfg = cfg.normalized()
	if cfg.CrossoverRefineRatio > 0 {
		child = constructors.RefineCardsByEFT(child, g, cardCount, cfg.CrossoverRefineRatio, rng)
	}
	return child
}

// positionsByOp returns, for each op id, its index in schedule's dispatch
// order.
func positionsByOp(schedule domain.Schedule, n int) []int {
	pos := make([]int, n)
	for i, e := range schedule {
		pos[e.OpID] = i
	}
	return pos
}

// cardsByOp returns, for each op id, the card it was assigned in schedule.
func cardsByOp(schedule domain.Schedule, n int) []int32 {
	cards := make([]int32, n)
	for _, e := range schedule {
		cards[e.OpID] = e.CardID
	}
	return cards
}
