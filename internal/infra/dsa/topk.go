package dsa

// ─── Bounded Top-K (score, op_id, card_id) Set ──────────────────────────────
//
// The greedy EFT constructor's ε-greedy selection (spec §4.5) needs the k
// candidates with the lowest perturbed score, without sorting the full
// ready×cards cross product. TopK maintains a small sorted array — for the
// k≈3 the spec uses, insertion sort beats a heap on both constant factor and
// code size.

// Candidate is one (op, card) pairing scored during greedy construction.
type Candidate struct {
	Score  float64
	OpID   int32
	CardID int32
}

// TopK keeps the K lowest-scored Candidates seen via Offer, ordered
// ascending by (Score, OpID, CardID).
type TopK struct {
	k     int
	items []Candidate
}

// NewTopK returns an empty top-k tracker bounded at k (k must be >= 1).
func NewTopK(k int) *TopK {
	return &TopK{k: k, items: make([]Candidate, 0, k)}
}

func less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.OpID != b.OpID {
		return a.OpID < b.OpID
	}
	return a.CardID < b.CardID
}

// Offer inserts c into the tracked set if it belongs in the current top-k,
// evicting the worst entry when already at capacity.
func (t *TopK) Offer(c Candidate) {
	if len(t.items) < t.k {
		idx := t.insertionPoint(c)
		t.items = append(t.items, Candidate{})
		copy(t.items[idx+1:], t.items[idx:len(t.items)-1])
		t.items[idx] = c
		return
	}
	if !less(c, t.items[len(t.items)-1]) {
		return
	}
	idx := t.insertionPoint(c)
	copy(t.items[idx+1:], t.items[idx:len(t.items)-1])
	t.items[idx] = c
}

func (t *TopK) insertionPoint(c Candidate) int {
	lo, hi := 0, len(t.items)
	for lo < hi {
		mid := (lo + hi) / 2
		if less(t.items[mid], c) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Items returns the tracked candidates in ascending order. The returned
// slice must not be mutated.
func (t *TopK) Items() []Candidate {
	return t.items
}

// Len returns how many candidates are currently tracked (<= k).
func (t *TopK) Len() int {
	return len(t.items)
}
