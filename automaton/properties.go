package automaton

// LabeledSymbol pairs a symbol with the track it was read from, the
// atomic unit an NFAH consumes per step.
type LabeledSymbol struct {
	Symbol string
	Track  int
}

// ShortestAcceptedWordLength returns the length (in atomic
// (symbol,track) steps) of the shortest word accepted by nfah, and
// false if no accepting state is reachable at all.
func ShortestAcceptedWordLength(nfah *NFAH) (int, bool) {
	if len(nfah.Initial()) == 0 {
		return 0, false
	}
	dist := make(map[StateID]int)
	queue := make([]StateID, 0, len(nfah.Initial()))
	for _, id := range nfah.Initial() {
		if _, ok := dist[id]; !ok {
			dist[id] = 0
			queue = append(queue, id)
			if nfah.IsFinal(id) {
				return 0, true
			}
		}
	}
	for i := 0; i < len(queue); i++ {
		id := queue[i]
		for _, t := range nfah.Transitions(id) {
			if _, seen := dist[t.Target]; seen {
				continue
			}
			d := dist[id] + 1
			dist[t.Target] = d
			if nfah.IsFinal(t.Target) {
				return d, true
			}
			queue = append(queue, t.Target)
		}
	}
	return 0, false
}

// AcceptedPrefixes enumerates every path of exactly `length` steps
// starting at an initial state and ending at a final state, returned
// as the sequence of (symbol,track) labels along that path: with
// length set to ShortestAcceptedWordLength, every shortest accepted
// word, not just one.
func AcceptedPrefixes(nfah *NFAH, length int) [][]LabeledSymbol {
	var results [][]LabeledSymbol
	var path []LabeledSymbol

	var walk func(state StateID, remaining int)
	walk = func(state StateID, remaining int) {
		if remaining == 0 {
			if nfah.IsFinal(state) {
				cp := make([]LabeledSymbol, len(path))
				copy(cp, path)
				results = append(results, cp)
			}
			return
		}
		for _, t := range nfah.Transitions(state) {
			path = append(path, LabeledSymbol{Symbol: t.Symbol, Track: t.Track})
			walk(t.Target, remaining-1)
			path = path[:len(path)-1]
		}
	}

	for _, id := range nfah.Initial() {
		walk(id, length)
	}
	return results
}

// ProjectLabels projects a []LabeledSymbol sequence onto one track, keeping
// only the symbols read from that track, in order.
func ProjectLabels(seq []LabeledSymbol, track int) []string {
	out := make([]string, 0, len(seq))
	for _, l := range seq {
		if l.Track == track {
			out = append(out, l.Symbol)
		}
	}
	return out
}

// ShortestAcceptedWordLengthDFA is ShortestAcceptedWordLength specialized
// to an already-deterministic automaton (used by the KMP skip table,
// which works with projected/forced-final DFAs rather than NFAHs).
func ShortestAcceptedWordLengthDFA(d *DFA) (int, bool) {
	if len(d.Initial()) == 0 {
		return 0, false
	}
	dist := make(map[StateID]int)
	queue := make([]StateID, 0, len(d.Initial()))
	for _, id := range d.Initial() {
		if _, ok := dist[id]; !ok {
			dist[id] = 0
			queue = append(queue, id)
			if d.IsFinal(id) {
				return 0, true
			}
		}
	}
	for i := 0; i < len(queue); i++ {
		id := queue[i]
		for _, t := range d.Transitions(id) {
			if _, seen := dist[t.Target]; seen {
				continue
			}
			dd := dist[id] + 1
			dist[t.Target] = dd
			if d.IsFinal(t.Target) {
				return dd, true
			}
			queue = append(queue, t.Target)
		}
	}
	return 0, false
}

// StatesReachableInExactlySteps returns the set of DFA states reached
// by following exactly n transitions from d's initial states (any
// path of length n, regardless of label).
func StatesReachableInExactlySteps(d *DFA, n int) []StateID {
	frontier := dedupSorted(d.Initial())
	for step := 0; step < n; step++ {
		nextSet := make(map[StateID]bool)
		for _, s := range frontier {
			for _, t := range d.Transitions(s) {
				nextSet[t.Target] = true
			}
		}
		frontier = frontier[:0]
		for id := range nextSet {
			frontier = append(frontier, id)
		}
		frontier = dedupSorted(frontier)
		if len(frontier) == 0 {
			return frontier
		}
	}
	return frontier
}

// ProductReachesFinal performs a synchronized BFS over two DFAs
// starting from the given state sets: from (a-state, b-state), for
// every symbol both have a transition on, move both simultaneously;
// stop and report true as soon as either component lands on a final
// state. This is the "Product NFA" intersection-reachability check
// (spec.md §4.B step 4 and §4.I), specialized to the single
// reachability question the KMP skip table needs rather than
// materializing the full product automaton.
func ProductReachesFinal(aStates []StateID, a *DFA, bStates []StateID, b *DFA) bool {
	type pair struct{ x, y StateID }
	seen := make(map[pair]bool)
	var queue []pair
	for _, x := range aStates {
		for _, y := range bStates {
			p := pair{x, y}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, tx := range a.Transitions(cur.x) {
			for _, ty := range b.Transitions(cur.y) {
				if tx.Symbol != ty.Symbol {
					continue
				}
				if a.IsFinal(tx.Target) || b.IsFinal(ty.Target) {
					return true
				}
				p := pair{tx.Target, ty.Target}
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
	}
	return false
}
