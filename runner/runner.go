// Package runner implements the configuration-set runner (spec.md
// §4.D): given an automaton and one track-view per dimension, it
// tracks the saturated set of reachable (state, view-tuple,
// matching-begin, stream-id) configurations, expanding by successors
// until no new ones appear. Grounded on automata_runner.rs's
// NFAHRunner/SimpleAutomataRunner and hyper_pattern_matching.rs's
// PatternMatchingAutomataRunner/PatternMatchingAutomataConfiguration —
// the latter only adds matchingBegin/ids on top of the former's plain
// (state, views) pair, so this package carries both fields from the
// start rather than keeping two parallel runner types.
package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/streamlog"
)

// Configuration is one tracked matching attempt: an automaton state,
// one per-track view, the index each track's view started at when
// this attempt began (fixed for the attempt's whole lifetime, unlike
// the view itself which advances), and which physical stream id feeds
// each track.
type Configuration struct {
	State         automaton.StateID
	Views         []*streamlog.View[string]
	MatchingBegin []int
	IDs           []int
}

func newConfiguration(state automaton.StateID, views []*streamlog.View[string], ids []int) Configuration {
	begin := make([]int, len(views))
	for i, v := range views {
		begin[i] = v.Start()
	}
	return Configuration{
		State:         state,
		Views:         cloneViews(views),
		MatchingBegin: begin,
		IDs:           append([]int(nil), ids...),
	}
}

func cloneViews(views []*streamlog.View[string]) []*streamlog.View[string] {
	out := make([]*streamlog.View[string], len(views))
	for i, v := range views {
		out[i] = v.Clone()
	}
	return out
}

// key identifies c by its state, each view's (backing sequence, start)
// identity, its matching-begin indices and its stream ids, so clones of
// one view at the same position collapse to one configuration.
func (c Configuration) key() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(c.State), 10))
	for _, v := range c.Views {
		fmt.Fprintf(&sb, "|%v", v.Ident())
	}
	for _, b := range c.MatchingBegin {
		fmt.Fprintf(&sb, "|b%d", b)
	}
	for _, id := range c.IDs {
		fmt.Fprintf(&sb, "|i%d", id)
	}
	return sb.String()
}

func (c Configuration) duplicate(state automaton.StateID) Configuration {
	return Configuration{
		State:         state,
		Views:         cloneViews(c.Views),
		MatchingBegin: append([]int(nil), c.MatchingBegin...),
		IDs:           append([]int(nil), c.IDs...),
	}
}

// IsFinal reports whether c sits at an accepting state of a.
func (c Configuration) IsFinal(a *automaton.NFAH) bool {
	return a.IsFinal(c.State)
}

// IsWaiting reports whether c is blocked on more input: at least one
// track's view is neither closed nor carrying unread data. Once every
// track either has data ready or will never receive more, c is no
// longer waiting and is dropped after its final configurations (if
// any) have been reported.
func (c Configuration) IsWaiting() bool {
	for _, v := range c.Views {
		if !v.IsClosed() && v.IsEmpty() {
			return true
		}
	}
	return false
}

// successors computes every valid successor of c, carrying IDs and
// MatchingBegin through unchanged.
func successors(a *automaton.NFAH, c Configuration) []Configuration {
	var out []Configuration
	for _, t := range a.Transitions(c.State) {
		if t.Track < 0 || t.Track >= len(c.Views) {
			continue
		}
		head, ok := c.Views[t.Track].Head()
		if !ok || head != t.Symbol {
			continue
		}
		next := c.duplicate(t.Target)
		next.Views[t.Track].Advance(1)
		out = append(out, next)
	}
	return out
}

// Runner tracks the saturated set of configurations reachable from a
// starting set, given an automaton and one read-only track view per
// dimension. It is not safe for concurrent use by multiple goroutines;
// each matcher owns its own Runner. Grounded on
// hyper_pattern_matching.rs's PatternMatchingAutomataRunner.
type Runner struct {
	automaton *automaton.NFAH
	configs   map[string]Configuration
	// knownViews lets ResolveIDs map a view back to the physical
	// stream index that backs it, by identity.
	knownViews []*streamlog.View[string]
}

// New creates a Runner over a whose ResolveIDs calls resolve ids by
// identity comparison against knownViews.
func New(a *automaton.NFAH, knownViews []*streamlog.View[string]) *Runner {
	return &Runner{automaton: a, configs: make(map[string]Configuration), knownViews: knownViews}
}

// Len returns the number of distinct configurations currently tracked.
func (r *Runner) Len() int { return len(r.configs) }

// IsEmpty reports whether the configuration set is currently empty.
func (r *Runner) IsEmpty() bool { return len(r.configs) == 0 }

func (r *Runner) insert(c Configuration) {
	r.configs[c.key()] = c
}

// ResolveIDs maps each of views to the physical stream index in
// knownViews it has the same backing identity as.
func (r *Runner) ResolveIDs(views []*streamlog.View[string]) []int {
	ids := make([]int, 0, len(views))
	for _, v := range views {
		for i, known := range r.knownViews {
			if known.SameData(v) {
				ids = append(ids, i)
				break
			}
		}
	}
	return ids
}

// InsertFromInitialStates seeds the runner with one configuration per
// automaton initial state, all starting from views and tagged with ids.
func (r *Runner) InsertFromInitialStates(views []*streamlog.View[string], ids []int) {
	for _, s := range r.automaton.Initial() {
		r.insert(newConfiguration(s, views, ids))
	}
}

// Reset discards every tracked configuration, so the next
// InsertFromInitialStates call starts from an empty set.
func (r *Runner) Reset() {
	r.configs = make(map[string]Configuration)
}

// Consume saturates the configuration set: repeatedly computes
// successors of every current configuration and inserts newly
// discovered ones, stopping once a full pass adds nothing new. Returns
// true if any configuration was present to begin with, mirroring the
// Rust NFAHRunner's boolean convergence-loop return used as a
// while-condition by callers.
func (r *Runner) Consume() bool {
	if len(r.configs) == 0 {
		return false
	}
	for {
		before := len(r.configs)
		var fresh []Configuration
		for _, c := range r.configs {
			fresh = append(fresh, successors(r.automaton, c)...)
		}
		for _, c := range fresh {
			r.configs[c.key()] = c
		}
		if len(r.configs) == before {
			return true
		}
	}
}

// FinalConfigurations returns every tracked configuration currently
// sitting at an accepting automaton state.
func (r *Runner) FinalConfigurations() []Configuration {
	var out []Configuration
	for _, c := range r.configs {
		if c.IsFinal(r.automaton) {
			out = append(out, c)
		}
	}
	return out
}

// Configurations returns every currently tracked configuration.
func (r *Runner) Configurations() []Configuration {
	out := make([]Configuration, 0, len(r.configs))
	for _, c := range r.configs {
		out = append(out, c)
	}
	return out
}

// RemoveNonWaitingConfigurations drops every tracked configuration
// that is no longer waiting on more input (see Configuration.IsWaiting).
func (r *Runner) RemoveNonWaitingConfigurations() {
	for k, c := range r.configs {
		if !c.IsWaiting() {
			delete(r.configs, k)
		}
	}
}
