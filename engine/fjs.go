package engine

import (
	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/notify"
	"github.com/coregx/hyperpattern/runner"
	"github.com/coregx/hyperpattern/schedule"
	"github.com/coregx/hyperpattern/streamlog"
)

// FJSCoordinator drives hyper pattern matching the way Coordinator
// does, but prunes the start-position search with the two skip-value
// tables of spec.md §4.H/§4.I: a Quick-Search-style table rules out a
// restart position whose track content could never align with the
// boundary of any shortest accepted word, and a KMP-style table rules
// out positions immediately following an already-active configuration
// that can only be reached again after skipping forward. Grounded on
// fjs_hyper_pattern_matching.rs's FJSHyperPatternMatching.
type FJSCoordinator struct {
	automaton *automaton.NFAH
	notifier  notify.Notifier
	runner    *runner.Runner
	sequences []*streamlog.Sequence[string]
	readSize  []int
	eof       []bool
	tuples    [][]int
	queues    map[string]*schedule.Queue
	skipped   *schedule.SkipSet
	qs        *schedule.QSTable
	kmp       *schedule.KMPTable
}

// NewFJSCoordinator creates an FJSCoordinator over n physical input
// streams for automaton a, reporting every accepted match to notifier.
func NewFJSCoordinator(a *automaton.NFAH, notifier notify.Notifier, n int) *FJSCoordinator {
	sequences := make([]*streamlog.Sequence[string], n)
	views := make([]*streamlog.View[string], n)
	for i := range sequences {
		sequences[i] = streamlog.New[string]()
		views[i] = sequences[i].View()
	}

	fc := &FJSCoordinator{
		automaton: a,
		notifier:  notifier,
		runner:    runner.New(a, views),
		sequences: sequences,
		readSize:  make([]int, n),
		eof:       make([]bool, n),
		tuples:    cartesianTuples(n, a.Dims()),
		queues:    make(map[string]*schedule.Queue),
		skipped:   schedule.NewSkipSet(a.Dims(), n),
		qs:        schedule.NewQSTable(a),
		kmp:       schedule.NewKMPTable(a),
	}

	start := make([]int, a.Dims())
	seed := (schedule.StartPosition{Indices: start}).ImmediateSuccessors()

	for _, tuple := range fc.tuples {
		q := schedule.NewQueue()
		for _, s := range seed {
			q.Push(s)
		}
		fc.queues[tupleKey(tuple)] = q
		fc.runner.InsertFromInitialStates(viewsFor(sequences, tuple), tuple)
	}

	return fc
}

func (fc *FJSCoordinator) inRange(tuple []int, start schedule.StartPosition) bool {
	for i, idx := range start.Indices {
		stream := tuple[i]
		if fc.eof[stream] && idx >= fc.readSize[stream] {
			return false
		}
	}
	return true
}

func (fc *FJSCoordinator) notifyFinals() {
	for _, cfg := range fc.runner.FinalConfigurations() {
		dims := len(cfg.IDs)
		intervals := make([]notify.Interval, dims)
		for i := 0; i < dims; i++ {
			intervals[i] = notify.Interval{Start: cfg.MatchingBegin[i], End: cfg.Views[i].Start() - 1}
		}
		fc.notifier.Notify(notify.Result{Intervals: intervals, IDs: cfg.IDs})
	}
}

// markKMPSkips applies the KMP-style table to every currently active
// configuration: a configuration sitting at state with skip value sv on
// track i rules out that track restarting anywhere in
// (matchingBegin[i], matchingBegin[i]+sv) for the physical stream it is
// currently bound to.
func (fc *FJSCoordinator) markKMPSkips() {
	for _, cfg := range fc.runner.Configurations() {
		for i := range cfg.IDs {
			sv := fc.kmp.SkipValue(cfg.State, i)
			for j := 1; j < sv; j++ {
				fc.skipped.Insert(i, cfg.IDs[i], cfg.MatchingBegin[i]+j)
			}
		}
	}
}

// findNewPosition pops candidates from q until one both passes the
// skip set and, per track, cannot be proven impossible by the
// Quick-Search table; any QS-proven-impossible candidate is discarded
// after marking the whole skippable width it reveals, without pushing
// its own successors (they stay unreachable until a later, shorter
// skip value proves otherwise). Mirrors find_new_position.
func (fc *FJSCoordinator) findNewPosition(tuple []int, q *schedule.Queue) (schedule.StartPosition, bool) {
	for {
		candidate, ok := q.Pop()
		if !ok {
			return schedule.StartPosition{}, false
		}
		if !fc.skipped.Matchable(candidate, tuple) {
			continue
		}
		if fc.qsSkippable(tuple, candidate) {
			continue
		}
		return candidate, true
	}
}

// qsSkippable reports whether candidate can be proven impossible by
// the Quick-Search table on any track, marking the revealed skippable
// width as it goes.
func (fc *FJSCoordinator) qsSkippable(tuple []int, candidate schedule.StartPosition) bool {
	for v, start := range candidate.Indices {
		stream := tuple[v]
		shortest := fc.qs.ShortestLength[v]
		if shortest == 0 {
			continue
		}
		endIdx := start + shortest - 1
		nextIdx := start + shortest
		endSymbol, ok := fc.sequences[stream].Get(endIdx)
		if !ok {
			// Not enough input yet to judge this track: don't skip.
			continue
		}
		if fc.qs.InLastWord(v, endSymbol) {
			continue
		}
		nextSymbol, ok := fc.sequences[stream].Get(nextIdx)
		if !ok {
			continue
		}
		width := fc.qs.SkipValue(nextSymbol, v)
		for i := 0; i < width; i++ {
			fc.skipped.Insert(v, stream, start+i)
		}
		return true
	}
	return false
}

// Feed appends action to the physical stream at index track, advances
// matching, applies the KMP skip table to every surviving
// configuration, and restarts any id-tuple that went idle from the
// next viable queued start position.
func (fc *FJSCoordinator) Feed(action string, track int) {
	fc.sequences[track].Append(action)
	fc.readSize[track]++
	fc.runner.Consume()
	fc.notifyFinals()
	fc.markKMPSkips()
	fc.runner.RemoveNonWaitingConfigurations()

	current := make(map[string]bool)
	for _, cfg := range fc.runner.Configurations() {
		current[tupleKey(cfg.IDs)] = true
	}

	for _, tuple := range fc.tuples {
		key := tupleKey(tuple)
		if current[key] {
			continue
		}
		q := fc.queues[key]
		next, ok := fc.findNewPosition(tuple, q)
		if !ok {
			continue
		}
		for _, succ := range next.ImmediateSuccessors() {
			if fc.inRange(tuple, succ) && fc.skipped.Matchable(succ, tuple) {
				q.Push(succ)
			}
		}
		views := viewsFor(fc.sequences, tuple)
		for i := range tuple {
			views[i].Advance(next.Indices[i])
		}
		fc.runner.InsertFromInitialStates(views, tuple)
	}
}

// SetEOF closes the physical stream at index track.
func (fc *FJSCoordinator) SetEOF(track int) {
	fc.sequences[track].Close()
	fc.eof[track] = true
}

// ConsumeRemaining drains every id-tuple's waiting queue the same way
// Feed does, until no queue has any viable start position left.
func (fc *FJSCoordinator) ConsumeRemaining() {
	fc.runner.Consume()
	fc.notifyFinals()

	for fc.anyQueueNonEmpty() {
		fc.runner.Reset()
		for _, tuple := range fc.tuples {
			key := tupleKey(tuple)
			q := fc.queues[key]
			next, ok := fc.findNewPosition(tuple, q)
			if !ok {
				continue
			}
			for _, succ := range next.ImmediateSuccessors() {
				if fc.inRange(tuple, succ) && fc.skipped.Matchable(succ, tuple) {
					q.Push(succ)
				}
			}
			views := viewsFor(fc.sequences, tuple)
			for i := range tuple {
				views[i].Advance(next.Indices[i])
			}
			fc.runner.InsertFromInitialStates(views, tuple)
		}
		fc.runner.Consume()
		fc.notifyFinals()
	}
}

func (fc *FJSCoordinator) anyQueueNonEmpty() bool {
	for _, q := range fc.queues {
		if q.Len() > 0 {
			return true
		}
	}
	return false
}
