// Package eval implements the makespan evaluator and the schedule
// validator (spec §4.1, §4.2). Both are thin drivers over the shared
// schedsim simulation core, so they always agree with every constructor
// on how a given (op_id, card_id) sequence simulates.
package eval

import (
	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/schedsim"
)

// Makespan computes the makespan of schedule against graph on cardCount
// cards. Pure function, permissive: entries referencing an out-of-range
// op id or card id are skipped rather than causing a failure — use
// ValidateAndMakespan when strict correctness checking is required.
//
// Edge cases: empty schedule or cardCount <= 0 both yield 0.
func Makespan(schedule domain.Schedule, g *domain.Graph, cardCount int) int64 {
	if cardCount <= 0 || len(schedule) == 0 {
		return 0
	}

	st := schedsim.NewState(g.NumOps(), cardCount)
	for _, e := range schedule {
		if int(e.OpID) < 0 || int(e.OpID) >= g.NumOps() {
			continue
		}
		if int(e.CardID) < 0 || int(e.CardID) >= cardCount {
			continue
		}
		p := st.Simulate(g, e.OpID, e.CardID)
		st.Commit(e.OpID, e.CardID, p)
	}
	return st.Makespan()
}
