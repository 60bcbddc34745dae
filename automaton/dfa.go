package automaton

import "sort"

// dfaTransition is a single deterministic edge labeled by one symbol.
type dfaTransition struct {
	Symbol string
	Target StateID
}

type dfaState struct {
	IsFinal     bool
	Transitions []dfaTransition
}

// DFA is a deterministic single-track automaton produced by projecting
// an NFAH onto one track and eliminating its epsilon (other-track)
// transitions via subset construction. May be partial (a (state,symbol)
// pair may have no transition) or complete (see MakeComplete).
type DFA struct {
	states  []dfaState
	initial []StateID
	alpha   map[string]bool
}

// Initial returns the DFA's initial state set. Every DFA built in this
// package (Project, ProjectWithFinal, MinimizeBrzozowski) carries
// exactly one; only the intermediate reversedNFA used during
// Brzozowski minimization has several.
func (d *DFA) Initial() []StateID { return d.initial }

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.states) }

// IsFinal reports whether id is an accepting state.
func (d *DFA) IsFinal(id StateID) bool { return d.states[id].IsFinal }

// Step follows the transition from id on symbol, returning
// (target, true), or (0, false) if none is defined.
func (d *DFA) Step(id StateID, symbol string) (StateID, bool) {
	for _, t := range d.states[id].Transitions {
		if t.Symbol == symbol {
			return t.Target, true
		}
	}
	return 0, false
}

// Transitions returns the outgoing transitions of id as (symbol, target) pairs.
func (d *DFA) Transitions(id StateID) []dfaTransition { return d.states[id].Transitions }

// Alphabet returns the symbols this DFA has any transition labeled with.
func (d *DFA) Alphabet() []string {
	out := make([]string, 0, len(d.alpha))
	for s := range d.alpha {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// dfaBuilder accumulates states during subset construction.
type dfaBuilder struct {
	states []dfaState
	alpha  map[string]bool
}

func (b *dfaBuilder) addState(isFinal bool) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, dfaState{IsFinal: isFinal})
	return id
}

func (b *dfaBuilder) addTransition(from StateID, symbol string, to StateID) {
	b.states[from].Transitions = append(b.states[from].Transitions, dfaTransition{Symbol: symbol, Target: to})
	if b.alpha == nil {
		b.alpha = make(map[string]bool)
	}
	b.alpha[symbol] = true
}

// Project builds the DFA reached by projecting nfah onto track: every
// transition labeled with that track becomes a real symbol edge, every
// other transition becomes an epsilon edge, and the whole thing is
// epsilon-eliminated via subset construction in one pass (spec.md
// §4.B steps 1-3 combined: the "ε-NFA → NFA (powerset)" step always
// produces a single successor subset per (subset, symbol), which is
// already the DFA transition function).
func Project(nfah *NFAH, track int) *DFA {
	return projectAndDeterminize(nfah, track, func(id StateID) bool { return nfah.IsFinal(id) })
}

// ProjectWithFinal is Project, except exactly loc is treated as final
// (all other original finality is ignored). Used by the KMP skip table
// construction to ask "what is the shortest way, through this track,
// to re-reach state loc".
func ProjectWithFinal(nfah *NFAH, track int, loc StateID) *DFA {
	return projectAndDeterminize(nfah, track, func(id StateID) bool { return id == loc })
}

func projectAndDeterminize(nfah *NFAH, track int, isFinal func(StateID) bool) *DFA {
	reachable := reachableStates(statesSlice(nfah), nfah.Initial())

	epsilonClosure := func(seed []StateID) []StateID {
		seen := make(map[StateID]bool, len(seed))
		queue := make([]StateID, 0, len(seed))
		for _, id := range seed {
			if !seen[id] {
				seen[id] = true
				queue = append(queue, id)
			}
		}
		for i := 0; i < len(queue); i++ {
			id := queue[i]
			for _, t := range nfah.Transitions(id) {
				if t.Track == track {
					continue
				}
				if !reachable[t.Target] || seen[t.Target] {
					continue
				}
				seen[t.Target] = true
				queue = append(queue, t.Target)
			}
		}
		out := make([]StateID, 0, len(seen))
		for id := range seen {
			out = append(out, id)
		}
		return dedupSorted(out)
	}

	b := &dfaBuilder{}
	subsetID := make(map[string]StateID)

	initialSet := epsilonClosure(nfah.Initial())
	key := stateSetKey(initialSet)
	initialFinal := anyFinal(initialSet, isFinal)
	initID := b.addState(initialFinal)
	subsetID[key] = initID

	type pending struct {
		set []StateID
		id  StateID
	}
	queue := []pending{{set: initialSet, id: initID}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		bySymbol := make(map[string][]StateID)
		for _, s := range cur.set {
			for _, t := range nfah.Transitions(s) {
				if t.Track != track {
					continue
				}
				bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t.Target)
			}
		}
		symbols := make([]string, 0, len(bySymbol))
		for sym := range bySymbol {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			next := epsilonClosure(bySymbol[sym])
			if len(next) == 0 {
				continue
			}
			nextKey := stateSetKey(next)
			nextID, ok := subsetID[nextKey]
			if !ok {
				nextID = b.addState(anyFinal(next, isFinal))
				subsetID[nextKey] = nextID
				queue = append(queue, pending{set: next, id: nextID})
			}
			b.addTransition(cur.id, sym, nextID)
		}
	}

	return &DFA{states: b.states, initial: []StateID{initID}, alpha: b.alpha}
}

func anyFinal(ids []StateID, isFinal func(StateID) bool) bool {
	for _, id := range ids {
		if isFinal(id) {
			return true
		}
	}
	return false
}

func statesSlice(a *NFAH) []State {
	out := make([]State, a.States())
	for i := range out {
		out[i] = *a.State(StateID(i))
	}
	return out
}

// MakeComplete adds a sink state and routes every missing (state,
// symbol) transition there; the sink self-loops on every symbol in
// alphabet. Returns the sink's id.
func (d *DFA) MakeComplete(alphabet []string) StateID {
	sink := StateID(len(d.states))
	d.states = append(d.states, dfaState{IsFinal: false})
	if d.alpha == nil {
		d.alpha = make(map[string]bool)
	}
	for _, sym := range alphabet {
		d.alpha[sym] = true
	}
	for id := range d.states {
		if StateID(id) == sink {
			continue
		}
		present := make(map[string]bool, len(d.states[id].Transitions))
		for _, t := range d.states[id].Transitions {
			present[t.Symbol] = true
		}
		for _, sym := range alphabet {
			if !present[sym] {
				d.states[id].Transitions = append(d.states[id].Transitions, dfaTransition{Symbol: sym, Target: sink})
			}
		}
	}
	for _, sym := range alphabet {
		d.states[sink].Transitions = append(d.states[sink].Transitions, dfaTransition{Symbol: sym, Target: sink})
	}
	return sink
}

// Negate complements an already-complete DFA: returns a new DFA with
// accepting and non-accepting states swapped, sharing d's transition
// slices and leaving d itself unchanged. Panics (as an invariant violation) if called
// on a partial DFA, since the complement of a partial DFA would be
// ill-defined (a missing transition would become both rejecting and,
// after completion, accepting).
func (d *DFA) Negate() *DFA {
	alphabet := d.Alphabet()
	out := &DFA{
		states:  make([]dfaState, len(d.states)),
		initial: append([]StateID(nil), d.initial...),
		alpha:   d.alpha,
	}
	for id, s := range d.states {
		if len(s.Transitions) < len(alphabet) {
			panic("automaton: Negate called on a partial DFA")
		}
		out.states[id] = dfaState{IsFinal: !s.IsFinal, Transitions: s.Transitions}
	}
	return out
}

// reverse (below) builds the NFA that results from reversing every edge
// of d and swapping initial/final roles: new initials = old finals,
// new finals = old initials. This NFA may have several initial states
// and several symbol-labeled edges out of one state for one symbol.
type reversedEdge struct {
	Symbol string
	Target StateID
}

type reversedNFA struct {
	states  [][]reversedEdge
	isFinal []bool
	initial []StateID
}

func (d *DFA) reverse() *reversedNFA {
	r := &reversedNFA{
		states:  make([][]reversedEdge, len(d.states)),
		isFinal: make([]bool, len(d.states)),
	}
	for id, s := range d.states {
		if s.IsFinal {
			r.initial = append(r.initial, StateID(id))
		}
	}
	for _, id := range d.initial {
		r.isFinal[id] = true
	}
	for from, s := range d.states {
		for _, t := range s.Transitions {
			r.states[t.Target] = append(r.states[t.Target], reversedEdge{Symbol: t.Symbol, Target: StateID(from)})
		}
	}
	return r
}

// determinize performs subset construction over a reversedNFA,
// producing a genuine DFA with a single merged initial state.
func (r *reversedNFA) determinize() *DFA {
	b := &dfaBuilder{}
	subsetID := make(map[string]StateID)

	closure := func(ids []StateID) []StateID { return dedupSorted(ids) } // no epsilon edges here

	initialSet := closure(r.initial)
	key := stateSetKey(initialSet)
	initID := b.addState(anyFinalList(initialSet, r.isFinal))
	subsetID[key] = initID

	type pending struct {
		set []StateID
		id  StateID
	}
	queue := []pending{{set: initialSet, id: initID}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		bySymbol := make(map[string][]StateID)
		for _, s := range cur.set {
			for _, e := range r.states[s] {
				bySymbol[e.Symbol] = append(bySymbol[e.Symbol], e.Target)
			}
		}
		symbols := make([]string, 0, len(bySymbol))
		for sym := range bySymbol {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			next := closure(bySymbol[sym])
			if len(next) == 0 {
				continue
			}
			nextKey := stateSetKey(next)
			nextID, ok := subsetID[nextKey]
			if !ok {
				nextID = b.addState(anyFinalList(next, r.isFinal))
				subsetID[nextKey] = nextID
				queue = append(queue, pending{set: next, id: nextID})
			}
			b.addTransition(cur.id, sym, nextID)
		}
	}

	return &DFA{states: b.states, initial: []StateID{initID}, alpha: b.alpha}
}

func anyFinalList(ids []StateID, isFinal []bool) bool {
	for _, id := range ids {
		if isFinal[id] {
			return true
		}
	}
	return false
}

// MinimizeBrzozowski minimizes d via reverse-determinize-reverse-determinize.
func (d *DFA) MinimizeBrzozowski() *DFA {
	step1 := d.reverse().determinize()
	step2 := step1.reverse().determinize()
	return step2
}
