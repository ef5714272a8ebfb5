package eval

import (
	"fmt"

	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/schedsim"
)

// ValidateAndMakespan replays schedule exactly as Makespan does, but fails
// fast — wrapping domain.ErrInvalidSchedule plus the precise cause — on any
// of: invalid card_count, wrong schedule length, an out-of-range id, a
// repeated op_id, or a producer that has not yet executed when its
// consumer is reached (spec §4.2).
func ValidateAndMakespan(schedule domain.Schedule, g *domain.Graph, cardCount int) (int64, error) {
	if cardCount <= 0 {
		return 0, fmt.Errorf("%w: %w: card_count=%d", domain.ErrInvalidSchedule, domain.ErrInvalidCardCount, cardCount)
	}

	n := g.NumOps()
	if len(schedule) != n {
		return 0, fmt.Errorf("%w: %w: got %d entries, want %d",
			domain.ErrInvalidSchedule, domain.ErrScheduleWrongLength, len(schedule), n)
	}

	seen := make([]bool, n)
	st := schedsim.NewState(n, cardCount)

	for _, e := range schedule {
		if e.OpID < 0 || int(e.OpID) >= n {
			return 0, fmt.Errorf("%w: %w: %d", domain.ErrInvalidSchedule, domain.ErrOpIDOutOfRange, e.OpID)
		}
		if e.CardID < 0 || int(e.CardID) >= cardCount {
			return 0, fmt.Errorf("%w: %w: %d", domain.ErrInvalidSchedule, domain.ErrCardIDOutOfRange, e.CardID)
		}
		if seen[e.OpID] {
			return 0, fmt.Errorf("%w: %w: %d", domain.ErrInvalidSchedule, domain.ErrDuplicateOpID, e.OpID)
		}
		seen[e.OpID] = true

		for _, p := range g.Inputs(int(e.OpID)) {
			if !seen[p] {
				return 0, fmt.Errorf("%w: %w: op %d depends on unscheduled op %d",
					domain.ErrInvalidSchedule, domain.ErrProducerNotReady, e.OpID, p)
			}
		}

		p := st.Simulate(g, e.OpID, e.CardID)
		st.Commit(e.OpID, e.CardID, p)
	}

	return st.Makespan(), nil
}
