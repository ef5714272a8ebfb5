// Package dsa holds small data structures shared by the scheduler's
// constructors.
package dsa

// ─── Ready-Set Priority Queue (Min-Heap) ────────────────────────────────────
//
// Operations:
//   Push: O(log n) — sift up
//   Pop:  O(log n) — sift down (extract-min)
//   Len:  O(1)
//
// Keyed by (priority float64, op_id int32) ascending, tie-broken by op_id —
// the ready set ordering the Priority-Topo constructors pop from (spec §4.3).
// Unlike a general task queue this carries no time-based starvation boost:
// priorities are assigned once per construction pass and never age.

// ReadyItem is one ready-to-schedule operator waiting in the heap.
type ReadyItem struct {
	OpID     int32
	Priority float64
}

// ReadyHeap is a plain (non-thread-safe) min-heap over ReadyItem, used
// within a single constructor pass.
type ReadyHeap struct {
	items []ReadyItem
}

// NewReadyHeap returns an empty heap with room for the given capacity hint.
func NewReadyHeap(capacityHint int) *ReadyHeap {
	return &ReadyHeap{items: make([]ReadyItem, 0, capacityHint)}
}

// Push adds an item. O(log n).
func (h *ReadyHeap) Push(item ReadyItem) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the lowest-(priority, op_id) item. O(log n).
func (h *ReadyHeap) Pop() (ReadyItem, bool) {
	if len(h.items) == 0 {
		return ReadyItem{}, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top, true
}

// Len returns the number of items in the heap.
func (h *ReadyHeap) Len() int {
	return len(h.items)
}

func (h *ReadyHeap) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.OpID < b.OpID
}

func (h *ReadyHeap) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if h.less(idx, parent) {
			h.items[idx], h.items[parent] = h.items[parent], h.items[idx]
			idx = parent
		} else {
			break
		}
	}
}

func (h *ReadyHeap) siftDown(idx int) {
	n := len(h.items)
	for {
		smallest := idx
		left := 2*idx + 1
		right := 2*idx + 2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == idx {
			break
		}
		h.items[idx], h.items[smallest] = h.items[smallest], h.items[idx]
		idx = smallest
	}
}
