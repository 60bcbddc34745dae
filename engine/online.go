package engine

import (
	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/notify"
	"github.com/coregx/hyperpattern/runner"
	"github.com/coregx/hyperpattern/streamlog"
)

// OnlineAssignment runs hyper pattern matching for one fixed
// stream-to-track assignment without any start-position waiting
// queue: instead, every time any one track's view gains unread
// elements, it eagerly seeds one fresh configuration per combination
// of that track's new position against every other track's entire
// already-read range. This trades the naive scheduler's lazy restart
// for eagerness, at the cost of the configuration set growing with
// the cross product of every track's read history. Grounded on
// online_single_hyper_pattern_matching.rs's OnlineSingleHyperPatternMatching.
type OnlineAssignment struct {
	automaton *automaton.NFAH
	notifier  notify.Notifier
	streams   []*streamlog.View[string]
	ids       []int
	runner    *runner.Runner

	// allowed, when set for dimension d, reports whether position on
	// that track is still viable to seed from — the "filter-skipped"
	// branch of spec.md §4.G applied to online scheduling. nil entries
	// mean every position is allowed.
	allowed []func(position int) bool
}

// NewOnlineAssignment starts a new OnlineAssignment for automaton a,
// reporting matches to notifier. streams[i] is this assignment's own
// read cursor over track i's physical stream — distinct from any other
// assignment's cursor over the same stream, since each assignment
// tracks its own read progress independently.
func NewOnlineAssignment(a *automaton.NFAH, notifier notify.Notifier, streams []*streamlog.View[string], ids []int) *OnlineAssignment {
	return &OnlineAssignment{
		automaton: a,
		notifier:  notifier,
		streams:   streams,
		ids:       ids,
		runner:    runner.New(a, streams),
	}
}

// Dimensions returns the number of tracks this assignment matches over.
func (m *OnlineAssignment) Dimensions() int { return len(m.ids) }

// buildInitialPositions enumerates the cartesian product of every
// track's full already-read range, except insertedVar which is fixed
// to the single position it was just advanced to.
func (m *OnlineAssignment) buildInitialPositions(insertedVar int) [][]int {
	dims := m.Dimensions()
	ranges := make([][]int, dims)
	for d := 0; d < dims; d++ {
		if d == insertedVar {
			ranges[d] = []int{m.streams[d].Start() - 1}
			continue
		}
		n := m.streams[d].Start()
		var r []int
		for i := 0; i < n; i++ {
			if m.allows(d, i) {
				r = append(r, i)
			}
		}
		ranges[d] = r
	}
	if !m.allows(insertedVar, ranges[insertedVar][0]) {
		return nil
	}
	return cartesianProductInts(ranges)
}

func (m *OnlineAssignment) allows(dim, position int) bool {
	if m.allowed == nil || m.allowed[dim] == nil {
		return true
	}
	return m.allowed[dim](position)
}

// insertInitialPositions drains every track's unread elements,
// advancing that track's own cursor one step at a time and seeding a
// fresh configuration per resulting cartesian combination, until every
// track's cursor has caught up to its physical stream's current length.
func (m *OnlineAssignment) insertInitialPositions() {
	dims := m.Dimensions()
	for d := 0; d < dims; d++ {
		for !m.streams[d].IsEmpty() {
			m.streams[d].Advance(1)
			for _, combo := range m.buildInitialPositions(d) {
				views := make([]*streamlog.View[string], dims)
				for j := 0; j < dims; j++ {
					views[j] = m.streams[j].AtStart(combo[j])
				}
				m.runner.InsertFromInitialStates(views, m.ids)
			}
		}
	}
}

// ConsumeInput seeds every newly reachable initial position, saturates
// the configuration set, reports every final configuration found, and
// prunes configurations no longer waiting on more input.
func (m *OnlineAssignment) ConsumeInput() {
	m.insertInitialPositions()
	m.runner.Consume()

	dims := m.Dimensions()
	for _, c := range m.runner.FinalConfigurations() {
		intervals := make([]notify.Interval, dims)
		for i := 0; i < dims; i++ {
			intervals[i] = notify.Interval{Start: c.MatchingBegin[i], End: c.Views[i].Start() - 1}
		}
		m.notifier.Notify(notify.Result{Intervals: intervals, IDs: c.IDs})
	}
	m.runner.RemoveNonWaitingConfigurations()
}

// cartesianProductInts returns the cartesian product of ranges, one
// combination per result entry in the same dimension order.
func cartesianProductInts(ranges [][]int) [][]int {
	result := [][]int{{}}
	for _, r := range ranges {
		var next [][]int
		for _, prefix := range result {
			for _, v := range r {
				combo := append(append([]int(nil), prefix...), v)
				next = append(next, combo)
			}
		}
		result = next
	}
	return result
}

// OnlineCoordinator drives online matching across every legal
// stream-to-track assignment at once, by owning one independent
// OnlineAssignment per id-tuple — unlike Coordinator and
// FJSCoordinator, which share a single configuration-set runner tagged
// by id-tuple, since each OnlineAssignment needs its own private
// per-track read cursors to know when to eagerly seed.
type OnlineCoordinator struct {
	sequences   []*streamlog.Sequence[string]
	assignments []*OnlineAssignment
}

// NewOnlineCoordinator creates an OnlineCoordinator over n physical
// input streams for automaton a, reporting every accepted match to
// notifier.
func NewOnlineCoordinator(a *automaton.NFAH, notifier notify.Notifier, n int) *OnlineCoordinator {
	sequences := make([]*streamlog.Sequence[string], n)
	for i := range sequences {
		sequences[i] = streamlog.New[string]()
	}
	return newOnlineCoordinator(a, notifier, sequences, nil)
}

func newOnlineCoordinator(a *automaton.NFAH, notifier notify.Notifier, sequences []*streamlog.Sequence[string], allowed func(stream, dim, position int) bool) *OnlineCoordinator {
	tuples := cartesianTuples(len(sequences), a.Dims())
	assignments := make([]*OnlineAssignment, len(tuples))
	for i, tuple := range tuples {
		asn := NewOnlineAssignment(a, notifier, viewsFor(sequences, tuple), tuple)
		if allowed != nil {
			asn.allowed = make([]func(int) bool, len(tuple))
			for d, stream := range tuple {
				stream, d := stream, d
				asn.allowed[d] = func(position int) bool { return allowed(stream, d, position) }
			}
		}
		assignments[i] = asn
	}

	return &OnlineCoordinator{sequences: sequences, assignments: assignments}
}

// Feed appends action to the physical stream at index track and drives
// every id-tuple's assignment forward.
func (oc *OnlineCoordinator) Feed(action string, track int) {
	oc.sequences[track].Append(action)
	for _, a := range oc.assignments {
		a.ConsumeInput()
	}
}

// SetEOF closes the physical stream at index track.
func (oc *OnlineCoordinator) SetEOF(track int) {
	oc.sequences[track].Close()
}

// ConsumeRemaining drains every assignment one final time, reporting
// any matches that only became final once their tracks closed.
func (oc *OnlineCoordinator) ConsumeRemaining() {
	for _, a := range oc.assignments {
		a.ConsumeInput()
	}
}
