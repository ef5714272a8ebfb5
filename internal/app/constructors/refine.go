package constructors

import (
	"math"
	"math/rand"

	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/schedsim"
)

// RefineCardsByEFT re-simulates schedule in its original order, and at a
// random ⌈ratio·|V|⌉-sized subset of positions (selected without
// replacement) reassigns the card by EFT probe across all cards instead of
// keeping the original assignment (spec §4.6). The dispatch order is
// unchanged, so topological validity is preserved.
func RefineCardsByEFT(schedule domain.Schedule, g *domain.Graph, cardCount int, ratio float64, rng *rand.Rand) domain.Schedule {
	n := len(schedule)
	if n == 0 {
		return schedule
	}

	numSelect := int(math.Ceil(ratio * float64(n)))
	if numSelect > n {
		numSelect = n
	}
	perm := rng.Perm(n)
	selected := make([]bool, n)
	for i := 0; i < numSelect; i++ {
		selected[perm[i]] = true
	}

	st := schedsim.NewState(g.NumOps(), cardCount)
	out := make(domain.Schedule, n)

	for i, e := range schedule {
		card := e.CardID
		if selected[i] {
			card, _ = bestEFTCard(g, st, e.OpID, cardCount, -1)
		}
		pl := st.Simulate(g, e.OpID, card)
		st.Commit(e.OpID, card, pl)
		out[i] = domain.Entry{OpID: e.OpID, CardID: card}
	}
	return out
}
