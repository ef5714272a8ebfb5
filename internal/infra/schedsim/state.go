// Package schedsim implements the single resource-model simulation shared by
// the makespan evaluator, the validator, both priority-topo constructors,
// the greedy EFT constructor and card refinement. Factoring it once here is
// what makes "two schedulers that produce the same (op_id, card_id)
// sequence always yield identical makespans" hold by construction.
package schedsim

import (
	"sort"

	"github.com/zhenglier/eo/internal/domain"
)

// State is the simulated resource state during a schedule walk: per-card
// exec_ready / inbound_ready timelines, per-op finish_time and resident_card.
// State exists only for the duration of a single evaluation or construction
// pass — it is never persisted.
type State struct {
	ExecReady    []int64 // ExecReady[c]: next time card c's exec+inbound timeline is free
	InboundReady []int64 // InboundReady[c]: next time card c's inbound channel is free
	FinishTime   []int64 // FinishTime[op]: completion time of op, once scheduled
	ResidentCard []int32 // ResidentCard[op]: card op's output currently resides on, -1 if unscheduled
}

// NewState allocates a zeroed simulation state for a graph of numOps
// operators running on cardCount cards.
func NewState(numOps, cardCount int) *State {
	resident := make([]int32, numOps)
	for i := range resident {
		resident[i] = -1
	}
	return &State{
		ExecReady:    make([]int64, cardCount),
		InboundReady: make([]int64, cardCount),
		FinishTime:   make([]int64, numOps),
		ResidentCard: resident,
	}
}

// Placement is the result of a (read-only) probe of placing one operator on
// one card given the current State.
type Placement struct {
	FinishTime      int64   // finish_time[op] were this placement committed
	NewExecReady    int64   // exec_ready[card] were this placement committed
	NewInboundReady int64   // inbound_ready[card] were this placement committed
	Remote          []int32 // remote producer ids pulled in by this placement, in transfer order
}

type remoteInput struct {
	id     int32
	finish int64
}

// Simulate computes, without mutating s, the outcome of placing operator
// opID onto card, per spec §4.1 steps 1–5:
//  1. partition inputs into local (resident on card) and remote
//  2. local_max = max finish time of local inputs
//  3. remote inputs ordered by ascending finish time (ties by producer id),
//     each charged the producer's transfer cost, serialized on the card's
//     shared exec+inbound timeline
//  4. start_exec = max(timeline after transfers, local_max)
//  5. finish = start_exec + exec_cost(op)
func (s *State) Simulate(g *domain.Graph, opID int32, card int32) Placement {
	inputs := g.Inputs(int(opID))

	var localMax int64
	remotes := make([]remoteInput, 0, len(inputs))
	for _, p := range inputs {
		if s.ResidentCard[p] == card {
			if s.FinishTime[p] > localMax {
				localMax = s.FinishTime[p]
			}
		} else {
			remotes = append(remotes, remoteInput{id: p, finish: s.FinishTime[p]})
		}
	}

	sort.Slice(remotes, func(i, j int) bool {
		if remotes[i].finish != remotes[j].finish {
			return remotes[i].finish < remotes[j].finish
		}
		return remotes[i].id < remotes[j].id
	})

	execReady := s.ExecReady[card]
	inboundReady := s.InboundReady[card]
	transferred := make([]int32, 0, len(remotes))
	for _, r := range remotes {
		start := r.finish
		if inboundReady > start {
			start = inboundReady
		}
		if execReady > start {
			start = execReady
		}
		arrival := start + g.TransferCost[r.id]
		inboundReady = arrival
		execReady = arrival
		transferred = append(transferred, r.id)
	}

	startExec := execReady
	if localMax > startExec {
		startExec = localMax
	}
	finish := startExec + g.ExecCost[opID]

	return Placement{
		FinishTime:      finish,
		NewExecReady:    finish,
		NewInboundReady: inboundReady,
		Remote:          transferred,
	}
}

// Commit applies a previously simulated Placement for opID on card, updating
// the card's timelines, the operator's finish time and residency — including
// the transferred producers, which now reside on card (write-through:
// a producer's prior residency is forgotten once it is pulled to a new card).
func (s *State) Commit(opID int32, card int32, p Placement) {
	s.ExecReady[card] = p.NewExecReady
	s.InboundReady[card] = p.NewInboundReady
	s.FinishTime[opID] = p.FinishTime
	s.ResidentCard[opID] = card
	for _, t := range p.Remote {
		s.ResidentCard[t] = card
	}
}

// Makespan returns the latest time any card's timeline becomes idle.
func (s *State) Makespan() int64 {
	var m int64
	for _, t := range s.ExecReady {
		if t > m {
			m = t
		}
	}
	return m
}
