package schedule

import "github.com/coregx/hyperpattern/automaton"

// KMPTable holds, for every automaton state and track, the shortest
// number of symbols on that track needed before a resumed matching
// attempt (seeded at that state) can possibly reach an accepting
// configuration again — the KMP-style failure-function generalization
// used to skip non-productive restart attempts. Grounded on
// kmp_skip_values.rs.
type KMPTable struct {
	skipValues []map[automaton.StateID]int
}

// NewKMPTable builds the skip table for autom.
func NewKMPTable(autom *automaton.NFAH) *KMPTable {
	dims := autom.Dims()
	skipValues := make([]map[automaton.StateID]int, dims)

	for v := 0; v < dims; v++ {
		projected := automaton.Project(autom, v)
		sv := make(map[automaton.StateID]int, autom.States())

		for s := 0; s < autom.States(); s++ {
			loc := automaton.StateID(s)
			locDFA := automaton.ProjectWithFinal(autom, v, loc)
			length, ok := automaton.ShortestAcceptedWordLengthDFA(locDFA)
			if !ok {
				length = 0
			}

			found := false
			for i := 1; i < length; i++ {
				leftStates := automaton.StatesReachableInExactlySteps(locDFA, i)
				if automaton.ProductReachesFinal(leftStates, locDFA, projected.Initial(), projected) {
					sv[loc] = i
					found = true
					break
				}
			}
			if !found {
				sv[loc] = length
			}
		}
		skipValues[v] = sv
	}

	return &KMPTable{skipValues: skipValues}
}

// SkipValue returns the recorded skip value for state loc on track variable.
func (t *KMPTable) SkipValue(loc automaton.StateID, variable int) int {
	return t.skipValues[variable][loc]
}
