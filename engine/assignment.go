package engine

import (
	"container/heap"

	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/notify"
	"github.com/coregx/hyperpattern/runner"
	"github.com/coregx/hyperpattern/schedule"
	"github.com/coregx/hyperpattern/streamlog"
)

// Assignment runs hyper pattern matching for one fixed stream-to-track
// assignment: physical stream IDs are permanently bound to automaton
// tracks for this Assignment's whole lifetime. Grounded on
// single_hyper_pattern_matching.rs's NaiveSingleHyperPatternMatching.
type Assignment struct {
	automaton *automaton.NFAH
	notifier  notify.Notifier
	views     []*streamlog.View[string]
	ids       []int
	runner    *runner.Runner
	waiting   startPositionHeap
}

// NewAssignment starts a new Assignment for automaton a, reporting
// matches to notifier, where views[i] is the current read cursor of
// the physical stream bound to track i and ids[i] is that stream's
// index (used only for reporting; two tracks may share the same id,
// since a single physical stream may feed more than one track).
func NewAssignment(a *automaton.NFAH, notifier notify.Notifier, views []*streamlog.View[string], ids []int) *Assignment {
	run := runner.New(a, views)
	run.InsertFromInitialStates(views, ids)

	start := make([]int, a.Dims())
	var wq startPositionHeap
	for _, s := range (schedule.StartPosition{Indices: start}).ImmediateSuccessors() {
		wq = append(wq, s)
	}
	heap.Init(&wq)

	return &Assignment{
		automaton: a,
		notifier:  notifier,
		views:     views,
		ids:       ids,
		runner:    run,
		waiting:   wq,
	}
}

// Dimensions returns the number of tracks this Assignment matches over.
func (m *Assignment) Dimensions() int { return len(m.ids) }

// inRange reports whether start is still a viable fresh-attempt
// position: no track bound to a now-closed, exhausted stream.
func (m *Assignment) inRange(start schedule.StartPosition) bool {
	for i, idx := range start.Indices {
		if m.views[i].IsClosed() && idx >= m.views[i].Len() {
			return false
		}
	}
	return true
}

// ConsumeInput drives the matching loop: saturates the current
// configuration set, reports every final configuration found, prunes
// completed configurations, and restarts a fresh matching attempt from
// the next viable queued start position whenever no configuration
// remains active.
func (m *Assignment) ConsumeInput() {
	for m.runner.Consume() {
		finals := m.runner.FinalConfigurations()
		dims := m.Dimensions()
		for _, c := range finals {
			intervals := make([]notify.Interval, dims)
			for i := 0; i < dims; i++ {
				intervals[i] = notify.Interval{Start: c.MatchingBegin[i], End: c.Views[i].Start() - 1}
			}
			m.notifier.Notify(notify.Result{Intervals: intervals, IDs: c.IDs})
		}
		m.runner.RemoveNonWaitingConfigurations()

		if m.runner.IsEmpty() {
			if m.waiting.Len() == 0 {
				return
			}
			next := heap.Pop(&m.waiting).(schedule.StartPosition)
			for _, succ := range next.ImmediateSuccessors() {
				if m.inRange(succ) {
					heap.Push(&m.waiting, succ)
				}
			}
			views := make([]*streamlog.View[string], len(m.views))
			for i, v := range m.views {
				views[i] = v.Clone()
			}
			for i := 0; i < dims; i++ {
				views[i].Advance(next.Indices[i])
			}
			m.runner.InsertFromInitialStates(views, m.ids)
		}
	}
}

// startPositionHeap is a container/heap min-heap of schedule.StartPosition,
// used for the per-assignment waiting queue of fresh-attempt start
// positions. schedule.Queue already provides this with built-in
// dedup; Assignment uses the bare heap directly since
// single_hyper_pattern_matching.rs's BinaryHeap<Reverse<StartPosition>>
// does not dedup its waiting queue the way the coordinator's per-id
// -tuple queues do.
type startPositionHeap []schedule.StartPosition

func (h startPositionHeap) Len() int            { return len(h) }
func (h startPositionHeap) Less(i, j int) bool  { return h[i].Less(h[j]) }
func (h startPositionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *startPositionHeap) Push(x interface{}) { *h = append(*h, x.(schedule.StartPosition)) }
func (h *startPositionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
