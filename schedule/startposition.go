// Package schedule implements the start-position scheduler (spec.md
// §4.G) and the two skip-value tables that prune it (§4.H QS-style,
// §4.I KMP-style). Grounded on naive_hyper_pattern_matching.rs's
// StartPosition, quick_search_skip_values.rs, and kmp_skip_values.rs.
package schedule

import (
	"container/heap"
)

// StartPosition is a candidate k-tuple of per-track starting indices
// for a fresh matching attempt. Ordered first by the sum of indices
// (earlier overall positions first), then lexicographically — matching
// StartPosition's Ord/PartialOrd derivation in the original.
type StartPosition struct {
	Indices []int
}

func (s StartPosition) sum() int {
	total := 0
	for _, i := range s.Indices {
		total += i
	}
	return total
}

// Less reports whether s sorts before other under the scheduler's order.
func (s StartPosition) Less(other StartPosition) bool {
	sa, sb := s.sum(), other.sum()
	if sa != sb {
		return sa < sb
	}
	for i := range s.Indices {
		if s.Indices[i] != other.Indices[i] {
			return s.Indices[i] < other.Indices[i]
		}
	}
	return false
}

// ImmediateSuccessors returns one StartPosition per track, each with
// that track's index incremented by one: the set of next candidate
// start positions reachable by advancing exactly one track past s.
func (s StartPosition) ImmediateSuccessors() []StartPosition {
	out := make([]StartPosition, len(s.Indices))
	for i := range s.Indices {
		next := make([]int, len(s.Indices))
		copy(next, s.Indices)
		next[i]++
		out[i] = StartPosition{Indices: next}
	}
	return out
}

// Queue is a min-heap of StartPositions ordered by Less, used as the
// per-assignment waiting queue of candidate matching-attempt starts.
type Queue struct {
	items []StartPosition
}

// NewQueue creates an empty waiting queue.
func NewQueue() *Queue { return &Queue{} }

// Len returns the number of positions currently waiting.
func (q *Queue) Len() int { return len(q.items) }

// Push adds a StartPosition to the queue unless an equal one is
// already present (the original dedups its sorted waiting vector after
// every insertion batch).
func (q *Queue) Push(s StartPosition) {
	for _, existing := range q.items {
		if equalIndices(existing.Indices, s.Indices) {
			return
		}
	}
	heap.Push((*innerHeap)(q), s)
}

// Pop removes and returns the earliest (smallest) StartPosition, or
// false if the queue is empty.
func (q *Queue) Pop() (StartPosition, bool) {
	if len(q.items) == 0 {
		return StartPosition{}, false
	}
	return heap.Pop((*innerHeap)(q)).(StartPosition), true
}

func equalIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// innerHeap adapts Queue to container/heap's Interface.
type innerHeap Queue

func (h innerHeap) Len() int            { return len(h.items) }
func (h innerHeap) Less(i, j int) bool  { return h.items[i].Less(h.items[j]) }
func (h innerHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *innerHeap) Push(x interface{}) { h.items = append(h.items, x.(StartPosition)) }
func (h *innerHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
