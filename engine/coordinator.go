package engine

import (
	"strconv"
	"strings"

	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/notify"
	"github.com/coregx/hyperpattern/runner"
	"github.com/coregx/hyperpattern/schedule"
	"github.com/coregx/hyperpattern/streamlog"
)

// Coordinator drives hyper pattern matching across every legal
// stream-to-track assignment at once: for k tracks and n physical
// streams, it enumerates all k-tuples of stream indices (repeats
// allowed — one physical stream may feed more than one track) and
// keeps a single shared configuration set whose members are tagged
// with the id-tuple they belong to, restarting any id-tuple that goes
// idle from its own waiting queue. Grounded on
// naive_hyper_pattern_matching.rs's NaiveHyperPatternMatching.
type Coordinator struct {
	automaton *automaton.NFAH
	notifier  notify.Notifier
	runner    *runner.Runner
	sequences []*streamlog.Sequence[string]
	readSize  []int
	eof       []bool
	tuples    [][]int
	queues    map[string]*schedule.Queue

	// skip, when set, reports whether a candidate restart position for
	// tuple should be discarded without being tried: the "filter-skipped"
	// branch of spec.md §4.G, on top of the "out of range" branch
	// inRange always applies. nil means it never applies (plain naive
	// scheduling). Set by NewFilteredCoordinator. FJSCoordinator
	// implements its own "KMP/QS-skippable" branch separately, since its
	// skip tables also need to mutate state (the skip set) as they're
	// consulted, which this single boolean hook can't express.
	skip func(tuple []int, start schedule.StartPosition) bool
}

// NewCoordinator creates a Coordinator over n physical input streams
// for automaton a, reporting every accepted match to notifier.
func NewCoordinator(a *automaton.NFAH, notifier notify.Notifier, n int) *Coordinator {
	sequences := make([]*streamlog.Sequence[string], n)
	views := make([]*streamlog.View[string], n)
	for i := range sequences {
		sequences[i] = streamlog.New[string]()
		views[i] = sequences[i].View()
	}

	c := &Coordinator{
		automaton: a,
		notifier:  notifier,
		runner:    runner.New(a, views),
		sequences: sequences,
		readSize:  make([]int, n),
		eof:       make([]bool, n),
		tuples:    cartesianTuples(n, a.Dims()),
		queues:    make(map[string]*schedule.Queue),
	}

	start := make([]int, a.Dims())
	seed := (schedule.StartPosition{Indices: start}).ImmediateSuccessors()

	for _, tuple := range c.tuples {
		q := schedule.NewQueue()
		for _, s := range seed {
			q.Push(s)
		}
		c.queues[tupleKey(tuple)] = q
		c.runner.InsertFromInitialStates(c.viewsFor(tuple), tuple)
	}

	return c
}

func cartesianTuples(n, dims int) [][]int {
	if n == 0 || dims == 0 {
		return nil
	}
	var out [][]int
	var rec func(prefix []int)
	rec = func(prefix []int) {
		if len(prefix) == dims {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i := 0; i < n; i++ {
			rec(append(prefix, i))
		}
	}
	rec(nil)
	return out
}

func (c *Coordinator) viewsFor(tuple []int) []*streamlog.View[string] {
	return viewsFor(c.sequences, tuple)
}

// viewsFor creates one fresh view per tuple entry, each over the
// physical stream at that index.
func viewsFor(sequences []*streamlog.Sequence[string], tuple []int) []*streamlog.View[string] {
	out := make([]*streamlog.View[string], len(tuple))
	for i, idx := range tuple {
		out[i] = sequences[idx].View()
	}
	return out
}

func tupleKey(tuple []int) string {
	parts := make([]string, len(tuple))
	for i, v := range tuple {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Feed appends action to the physical stream at index track, advances
// matching, and reports every newly accepted match.
func (c *Coordinator) Feed(action string, track int) {
	c.sequences[track].Append(action)
	c.readSize[track]++
	c.runner.Consume()
	c.notifyFinals()
	c.runner.RemoveNonWaitingConfigurations()
	c.restartIdleTuples()
}

func (c *Coordinator) notifyFinals() {
	for _, cfg := range c.runner.FinalConfigurations() {
		dims := len(cfg.IDs)
		intervals := make([]notify.Interval, dims)
		for i := 0; i < dims; i++ {
			intervals[i] = notify.Interval{Start: cfg.MatchingBegin[i], End: cfg.Views[i].Start() - 1}
		}
		c.notifier.Notify(notify.Result{Intervals: intervals, IDs: cfg.IDs})
	}
}

func (c *Coordinator) currentTupleKeys() map[string]bool {
	seen := make(map[string]bool)
	for _, cfg := range c.runner.Configurations() {
		seen[tupleKey(cfg.IDs)] = true
	}
	return seen
}

// restartIdleTuples starts a fresh matching attempt, from the next
// viable queued start position, for every id-tuple that currently has
// no active configuration.
func (c *Coordinator) restartIdleTuples() {
	current := c.currentTupleKeys()
	for _, tuple := range c.tuples {
		key := tupleKey(tuple)
		if current[key] {
			continue
		}
		q := c.queues[key]
		next, ok := c.popValidStart(tuple, q)
		if !ok {
			continue
		}
		views := c.viewsFor(tuple)
		for i := range tuple {
			views[i].Advance(next.Indices[i])
		}
		c.runner.InsertFromInitialStates(views, tuple)
	}
}

// popValidStart pops candidate start positions from q until one
// survives both the "out of range" check and c.skip (if set), pushing
// each popped candidate's in-range immediate successors back before
// moving on — so a filter-skipped or skip-table-pruned position still
// lets the search continue past it, it just never seeds a fresh
// matching attempt itself. Returns false once q is exhausted.
func (c *Coordinator) popValidStart(tuple []int, q *schedule.Queue) (schedule.StartPosition, bool) {
	for {
		next, ok := q.Pop()
		if !ok {
			return schedule.StartPosition{}, false
		}
		for _, succ := range next.ImmediateSuccessors() {
			if c.inRange(tuple, succ) {
				q.Push(succ)
			}
		}
		if c.skip != nil && c.skip(tuple, next) {
			continue
		}
		return next, true
	}
}

func (c *Coordinator) inRange(tuple []int, start schedule.StartPosition) bool {
	for i, idx := range start.Indices {
		stream := tuple[i]
		if c.eof[stream] && idx >= c.readSize[stream] {
			return false
		}
	}
	return true
}

// SetEOF closes the physical stream at index track, signaling no more
// actions will ever be fed to it.
func (c *Coordinator) SetEOF(track int) {
	c.sequences[track].Close()
	c.eof[track] = true
}

// ConsumeRemaining drains every id-tuple's waiting queue, restarting
// fresh matching attempts and reporting any resulting matches until no
// queue has any viable start position left. Call once every physical
// stream has reached EOF.
func (c *Coordinator) ConsumeRemaining() {
	c.runner.Consume()
	c.notifyFinals()

	for c.anyQueueNonEmpty() {
		c.runner.Reset()
		for _, tuple := range c.tuples {
			key := tupleKey(tuple)
			q := c.queues[key]
			next, ok := c.popValidStart(tuple, q)
			if !ok {
				continue
			}
			views := c.viewsFor(tuple)
			for i := range tuple {
				views[i].Advance(next.Indices[i])
			}
			c.runner.InsertFromInitialStates(views, tuple)
		}
		c.runner.Consume()
		c.notifyFinals()
	}
}

func (c *Coordinator) anyQueueNonEmpty() bool {
	for _, q := range c.queues {
		if q.Len() > 0 {
			return true
		}
	}
	return false
}
