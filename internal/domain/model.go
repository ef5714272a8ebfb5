// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

// ─── Graph Types ─────────────────────────────────────────────────────────

// Graph is an immutable DAG of operators, stored as struct-of-arrays keyed
// by dense op_id ∈ [0, N). Producer lists use CSR-style offsets so the
// scheduler never chases pointers during simulation.
//
// Invariant: every id in InputIDs is < the index of the operator that
// references it (inputs are well-founded). The parser guarantees this;
// the scheduler assumes only acyclicity.
type Graph struct {
	ExecCost     []int64 // ExecCost[i] = time units to execute op i on any card
	TransferCost []int64 // TransferCost[i] = time units to ship op i's output to one other card

	// InputOffsets has length N+1. Op i's producers are
	// InputIDs[InputOffsets[i]:InputOffsets[i+1]].
	InputOffsets []int32
	InputIDs     []int32
}

// NumOps returns the number of operators in the graph.
func (g *Graph) NumOps() int {
	return len(g.ExecCost)
}

// Inputs returns the producer ids of operator id. The returned slice must
// not be mutated.
func (g *Graph) Inputs(id int) []int32 {
	return g.InputIDs[g.InputOffsets[id]:g.InputOffsets[id+1]]
}

// NewGraph builds a Graph from a per-operator list of producer ids,
// assigning dense CSR offsets. inputs[i] holds the producer ids of op i;
// duplicates within one operator's input list are tolerated.
func NewGraph(execCost, transferCost []int64, inputs [][]int32) *Graph {
	n := len(execCost)
	offsets := make([]int32, n+1)
	var total int32
	for i := 0; i < n; i++ {
		offsets[i] = total
		total += int32(len(inputs[i]))
	}
	offsets[n] = total

	ids := make([]int32, 0, total)
	for i := 0; i < n; i++ {
		ids = append(ids, inputs[i]...)
	}

	return &Graph{
		ExecCost:     execCost,
		TransferCost: transferCost,
		InputOffsets: offsets,
		InputIDs:     ids,
	}
}

// ─── Schedule Types ─────────────────────────────────────────────────────

// Entry is one (operator, card) assignment at a fixed position in dispatch
// order.
type Entry struct {
	OpID   int32
	CardID int32
}

// Schedule is an ordered, topologically valid assignment of every operator
// to a card. Schedules are produced by constructors and never mutated in
// place — transformations always build a new Schedule.
type Schedule []Entry

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	copy(out, s)
	return out
}

// OpIDs returns the dispatch-order sequence of operator ids.
func (s Schedule) OpIDs() []int32 {
	out := make([]int32, len(s))
	for i, e := range s {
		out[i] = e.OpID
	}
	return out
}

// CardOf returns a dense array mapping op_id -> card_id, built from the
// schedule. Callers must ensure every op_id in [0, n) appears in s.
func (s Schedule) CardOf(n int) []int32 {
	cards := make([]int32, n)
	for _, e := range s {
		cards[e.OpID] = e.CardID
	}
	return cards
}

// PositionOf returns a dense array mapping op_id -> its index in the
// schedule (dispatch position).
func (s Schedule) PositionOf(n int) []int32 {
	pos := make([]int32, n)
	for i, e := range s {
		pos[e.OpID] = int32(i)
	}
	return pos
}
