package engine

import (
	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/matcher"
	"github.com/coregx/hyperpattern/notify"
	"github.com/coregx/hyperpattern/schedule"
	"github.com/coregx/hyperpattern/streamlog"
)

// FilteredCoordinator wraps a Coordinator so that, per spec.md §4.F/§4.K,
// every (physical stream, track) pair is read through a matcher.Filter
// before its output can seed a fresh matching attempt: a restart
// position whose track content the filter has already proven can never
// lie inside any match is skipped, the same way an out-of-range
// position is, without blocking the search past it. Grounded on
// matching_filter.rs wired in front of naive_hyper_pattern_matching.rs.
type FilteredCoordinator struct {
	*Coordinator
	filters [][]*matcher.Filter    // filters[stream][track]
	outputs [][]*streamlog.View[Masked]
}

// Masked re-exports matcher.Masked so callers of this package never
// need to import matcher directly just to read a filtered element.
type Masked = matcher.Masked

// NewFilteredCoordinator creates a FilteredCoordinator over n physical
// input streams for automaton a. Every legal (stream, track) pair gets
// its own matcher.Filter, built over that track's projected DFA
// (automaton.Project), so a symbol is only ever judged against the
// single track it is read as.
func NewFilteredCoordinator(a *automaton.NFAH, notifier notify.Notifier, n int) *FilteredCoordinator {
	c := NewCoordinator(a, notifier, n)
	filters, outputs := buildTrackFilters(a, c.sequences)

	fc := &FilteredCoordinator{Coordinator: c, filters: filters, outputs: outputs}
	c.skip = fc.filterSkipped
	return fc
}

// buildTrackFilters creates one matcher.Filter per (physical stream,
// track) pair over sequences, each built over that track's projected
// DFA (automaton.Project) so a symbol is only ever judged against the
// single track it is read as.
func buildTrackFilters(a *automaton.NFAH, sequences []*streamlog.Sequence[string]) ([][]*matcher.Filter, [][]*streamlog.View[Masked]) {
	dims := a.Dims()
	dfas := make([]*automaton.DFA, dims)
	for d := 0; d < dims; d++ {
		dfas[d] = automaton.Project(a, d)
	}

	filters := make([][]*matcher.Filter, len(sequences))
	outputs := make([][]*streamlog.View[Masked], len(sequences))
	for s := range sequences {
		filters[s] = make([]*matcher.Filter, dims)
		outputs[s] = make([]*streamlog.View[Masked], dims)
		for d := 0; d < dims; d++ {
			f := matcher.NewFilter(matcher.NewEarliest(dfas[d]), sequences[s].View())
			filters[s][d] = f
			outputs[s][d] = f.Output()
		}
	}
	return filters, outputs
}

// filterSkipped reports whether start is a position this coordinator's
// filters have already proven can never begin a match: true as soon as
// any track whose filter has rendered a verdict for its index came
// back unmatched, even if other tracks' filters have not yet caught up
// to theirs. A track without a verdict yet never makes start skipped
// on its own.
func (fc *FilteredCoordinator) filterSkipped(tuple []int, start schedule.StartPosition) bool {
	for d, idx := range start.Indices {
		stream := tuple[d]
		slice := fc.outputs[stream][d].ReadableSlice()
		if idx >= len(slice) {
			continue
		}
		if !slice[idx].Matched {
			return true
		}
	}
	return false
}

// Feed drains action through every filter reading the physical stream
// at index track before running the underlying Coordinator's matching
// step, so filterSkipped always sees up-to-date verdicts.
func (fc *FilteredCoordinator) Feed(action string, track int) {
	fc.Coordinator.sequences[track].Append(action)
	fc.Coordinator.readSize[track]++
	for _, f := range fc.filters[track] {
		f.ConsumeInput()
	}
	fc.Coordinator.runner.Consume()
	fc.Coordinator.notifyFinals()
	fc.Coordinator.runner.RemoveNonWaitingConfigurations()
	fc.Coordinator.restartIdleTuples()
}

// SetEOF closes the physical stream at index track and drains its
// filters one final time so their output catches up to the close.
func (fc *FilteredCoordinator) SetEOF(track int) {
	fc.Coordinator.sequences[track].Close()
	fc.Coordinator.eof[track] = true
	for _, f := range fc.filters[track] {
		f.ConsumeInput()
	}
}

// FilteredOnlineCoordinator is the online-scheduling counterpart of
// FilteredCoordinator: it wraps an OnlineCoordinator instead of a
// Coordinator, gating each track's eager-seeding decision on the same
// per-(stream,track) matcher.Filter verdicts.
type FilteredOnlineCoordinator struct {
	*OnlineCoordinator
	filters [][]*matcher.Filter
	outputs [][]*streamlog.View[Masked]
}

// NewFilteredOnlineCoordinator creates a FilteredOnlineCoordinator over
// n physical input streams for automaton a.
func NewFilteredOnlineCoordinator(a *automaton.NFAH, notifier notify.Notifier, n int) *FilteredOnlineCoordinator {
	sequences := make([]*streamlog.Sequence[string], n)
	for i := range sequences {
		sequences[i] = streamlog.New[string]()
	}
	filters, outputs := buildTrackFilters(a, sequences)

	foc := &FilteredOnlineCoordinator{filters: filters, outputs: outputs}
	foc.OnlineCoordinator = newOnlineCoordinator(a, notifier, sequences, foc.filterAllows)
	return foc
}

// filterAllows reports whether position on the track dim, read as
// physical stream's content, has not been proven unmatched yet.
func (foc *FilteredOnlineCoordinator) filterAllows(stream, dim, position int) bool {
	slice := foc.outputs[stream][dim].ReadableSlice()
	if position >= len(slice) {
		return true
	}
	return slice[position].Matched
}

// Feed drains action through every filter reading the physical stream
// at index track before driving the underlying OnlineCoordinator.
func (foc *FilteredOnlineCoordinator) Feed(action string, track int) {
	foc.OnlineCoordinator.sequences[track].Append(action)
	for _, f := range foc.filters[track] {
		f.ConsumeInput()
	}
	for _, a := range foc.OnlineCoordinator.assignments {
		a.ConsumeInput()
	}
}

// SetEOF closes the physical stream at index track and drains its
// filters one final time so their output catches up to the close.
func (foc *FilteredOnlineCoordinator) SetEOF(track int) {
	foc.OnlineCoordinator.sequences[track].Close()
	for _, f := range foc.filters[track] {
		f.ConsumeInput()
	}
}
