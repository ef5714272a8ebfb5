package ga

import (
	"math/rand"

	"github.com/zhenglier/eo/internal/app/constructors"
	"github.com/zhenglier/eo/internal/domain"
)

const mutateCardFlipProb = 0.15

// Mutate perturbs a schedule (spec §4.8 step 4): the op priorities are its
// current dispatch positions plus uniform noise in [0, 0.5), card
// inheritance starts from the schedule's own assignment, and the result is
// rebuilt with TopoByPriorityWithEFT. Half the time that rebuild is
// followed by an EFT refinement pass; the other half by a lighter pass
// that independently re-rolls each op's card with probability 0.15,
// keeping dispatch order untouched.
func Mutate(schedule domain.Schedule, g *domain.Graph, cardCount int, cfg Config, rng *rand.Rand) domain.Schedule {
	n := g.NumOps()
	pos := positionsByOp(schedule, n)
	cards := cardsByOp(schedule, n)

	priority := make([]float64, n)
	for op := 0; op < n; op++ {
		priority[op] = float64(pos[op]) + rng.Float64()*0.5
	}

	child := constructors.TopoByPriorityWithEFT(g, cardCount, priority, cards)
	if len(child) != n {
		return schedule.Clone()
	}

	cfg = cfg.normalized()
	if rng.Intn(2) == 0 {
		if cfg.MutationRefineRatio > 0 {
			child = constructors.RefineCardsByEFT(child, g, cardCount, cfg.MutationRefineRatio, rng)
		}
	} else {
		for i := range child {
			if rng.Float64() < mutateCardFlipProb {
				child[i].CardID = int32(rng.Intn(cardCount))
			}
		}
	}
	return child
}
