// Package matcher implements the earliest-start DFA matcher (spec.md
// §4.E) and the matching filter built on top of it (§4.F). Grounded on
// dfa_earliest_pattern_matcher.rs and matching_filter.rs.
package matcher

import "github.com/coregx/hyperpattern/automaton"

// Earliest tracks, for every DFA state currently reachable, the
// earliest input index at which that state first became active. Each
// symbol fed in advances every active state along its transition,
// retaining the minimum starting index whenever two paths converge on
// the same state.
type Earliest struct {
	dfa    *automaton.DFA
	Len    int
	active map[automaton.StateID]int
}

// NewEarliest creates a matcher for dfa with no input fed yet.
func NewEarliest(dfa *automaton.DFA) *Earliest {
	return &Earliest{dfa: dfa, active: make(map[automaton.StateID]int)}
}

// Feed processes one input symbol, activating the DFA's initial
// states at the current length if not already active, and following
// every currently active state's transition on symbol.
func (m *Earliest) Feed(symbol string) {
	for _, init := range m.dfa.Initial() {
		if _, ok := m.active[init]; !ok {
			m.active[init] = m.Len
		}
	}

	next := make(map[automaton.StateID]int, len(m.active))
	for state, start := range m.active {
		target, ok := m.dfa.Step(state, symbol)
		if !ok {
			continue
		}
		if cur, exists := next[target]; !exists || start < cur {
			next[target] = start
		}
	}
	m.active = next
	m.Len++
}

// CurrentMatching returns the earliest starting index among active
// states that are currently final, and true, or (0, false) if no final
// state is active.
func (m *Earliest) CurrentMatching() (int, bool) {
	best := -1
	for state, start := range m.active {
		if !m.dfa.IsFinal(state) {
			continue
		}
		if best == -1 || start < best {
			best = start
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// EarliestStartingPosition returns the minimum starting index across
// every active state, regardless of finality, and true, or (0, false)
// if nothing is active.
func (m *Earliest) EarliestStartingPosition() (int, bool) {
	best := -1
	for _, start := range m.active {
		if best == -1 || start < best {
			best = start
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
