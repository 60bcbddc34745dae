// Package automaton implements the k-track non-deterministic automaton
// (NFAH) at the core of the hyper pattern matching engine, its
// per-track projections, and the single-track DFA machinery those
// projections are built from.
package automaton

import (
	"sort"

	"github.com/coregx/hyperpattern/hpmerr"
)

// StateID identifies a state within an NFAH or a single-track DFA/NFA.
// It is a dense index into the owning automaton's state slice, playing
// the role object identity plays in an arena-based implementation.
type StateID uint32

// InvalidStateID marks the absence of a state.
const InvalidStateID StateID = 0xFFFFFFFF

// Transition is an edge `(symbol, track) -> target` out of a state.
type Transition struct {
	Symbol string
	Track  int
	Target StateID
}

// State is a single NFAH state: whether it accepts, and its outgoing
// transitions. Transitions are appended during construction and never
// mutated afterward once the owning NFAH is frozen (returned from
// Builder.Build).
type State struct {
	IsFinal     bool
	Transitions []Transition
}

// NFAH is a k-track non-deterministic finite automaton: a directed
// graph of States connected by (symbol, track) labeled Transitions,
// with a designated subset of initial states. There are no
// epsilon-transitions at this level. Built once by Builder, read-only
// thereafter.
type NFAH struct {
	Dimensions int
	states     []State
	initial    []StateID
}

// Dims returns the automaton's track count.
func (a *NFAH) Dims() int { return a.Dimensions }

// States returns the number of states.
func (a *NFAH) States() int { return len(a.states) }

// State returns the state identified by id. Panics if id is out of
// range; callers within this module only ever hold ids this automaton
// itself produced.
func (a *NFAH) State(id StateID) *State {
	return &a.states[id]
}

// Initial returns the automaton's initial state ids.
func (a *NFAH) Initial() []StateID { return a.initial }

// IsFinal reports whether id names a final state.
func (a *NFAH) IsFinal(id StateID) bool { return a.states[id].IsFinal }

// Transitions returns the outgoing transitions of id.
func (a *NFAH) Transitions(id StateID) []Transition { return a.states[id].Transitions }

// Builder incrementally constructs an NFAH. Mirrors the
// validate-then-build flow of the teacher's NFA builder: states and
// transitions accumulate in a plain slice (standing in for an arena —
// there is no interior mutation exposed once Build returns), and
// Build() performs the unreachable-transition prune before freezing
// the result.
type Builder struct {
	dimensions int
	states     []State
	initial    []StateID
}

// NewBuilder creates a Builder for a k-track automaton.
func NewBuilder(dimensions int) *Builder {
	return &Builder{dimensions: dimensions}
}

// AddState appends a new state and returns its id.
func (b *Builder) AddState(isInitial, isFinal bool) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{IsFinal: isFinal})
	if isInitial {
		b.initial = append(b.initial, id)
	}
	return id
}

// AddTransition adds a transition `from --(symbol,track)--> to`.
// Returns ErrInvalidTrack if track is out of [0, dimensions).
func (b *Builder) AddTransition(from StateID, symbol string, track int, to StateID) error {
	if track < 0 || track >= b.dimensions {
		return hpmerr.ErrInvalidTrack
	}
	if int(from) >= len(b.states) || int(to) >= len(b.states) {
		return hpmerr.ErrUndefinedState
	}
	b.states[from].Transitions = append(b.states[from].Transitions, Transition{
		Symbol: symbol,
		Track:  track,
		Target: to,
	})
	return nil
}

// Build freezes the automaton, pruning any transition that originates
// from a state unreachable from the initial states (remove_unreachable_transitions
// in the original source).
func (b *Builder) Build() *NFAH {
	reachable := reachableStates(b.states, b.initial)
	states := make([]State, len(b.states))
	for id, s := range b.states {
		if !reachable[StateID(id)] {
			states[id] = State{IsFinal: s.IsFinal}
			continue
		}
		states[id] = s
	}
	initial := make([]StateID, len(b.initial))
	copy(initial, b.initial)
	return &NFAH{Dimensions: b.dimensions, states: states, initial: initial}
}

func reachableStates(states []State, initial []StateID) map[StateID]bool {
	visited := make(map[StateID]bool, len(states))
	queue := make([]StateID, 0, len(initial))
	for _, id := range initial {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, t := range states[id].Transitions {
			if !visited[t.Target] {
				visited[t.Target] = true
				queue = append(queue, t.Target)
			}
		}
	}
	return visited
}

// stateSetKey canonicalizes a set of StateIDs into a comparable map
// key, the same role the teacher's internal/sparse.SparseSet dense
// array plays for frontier tracking, and the role StateSet<S>'s custom
// order-independent Hash plays in original_source/src/dfa.rs.
func stateSetKey(ids []StateID) string {
	sorted := make([]StateID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	// dense uint32 little-endian encoding keeps the key comparable and
	// collision-free for any finite state space.
	buf := make([]byte, len(sorted)*4)
	for i, id := range sorted {
		buf[i*4] = byte(id)
		buf[i*4+1] = byte(id >> 8)
		buf[i*4+2] = byte(id >> 16)
		buf[i*4+3] = byte(id >> 24)
	}
	return string(buf)
}

func dedupSorted(ids []StateID) []StateID {
	if len(ids) == 0 {
		return ids
	}
	sorted := make([]StateID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:1]
	for _, id := range sorted[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
