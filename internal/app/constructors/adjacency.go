// Package constructors implements the heuristic schedule builders of spec
// §4.3–§4.7: the two priority-topo variants, the greedy EFT list scheduler,
// card refinement, and the HEFT upward-rank priority.
package constructors

import "github.com/zhenglier/eo/internal/domain"

// BuildAdjacency derives Kahn in-degrees and a successor adjacency list
// from a graph's (consumer -> producers) input arrays.
func BuildAdjacency(g *domain.Graph) (inDegree []int32, succ [][]int32) {
	n := g.NumOps()
	inDegree = make([]int32, n)
	succ = make([][]int32, n)
	for i := 0; i < n; i++ {
		ins := g.Inputs(i)
		inDegree[i] = int32(len(ins))
		for _, p := range ins {
			succ[p] = append(succ[p], int32(i))
		}
	}
	return inDegree, succ
}

// NoInherit returns an inherit_cards array where every entry signals "no
// inherited card" (-1), suitable as the base case for TopoByPriority and
// TopoByPriorityWithEFT.
func NoInherit(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = -1
	}
	return out
}
