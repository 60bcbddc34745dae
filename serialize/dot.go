package serialize

import (
	"fmt"
	"strings"

	"github.com/coregx/hyperpattern/automaton"
)

// ToDOT renders a as a Graphviz DOT digraph: final states as double
// circles, an invisible start node pointing at every initial state,
// and one labeled edge per transition. Grounded on
// serialization.rs's automaton_to_dot.
func ToDOT(a *automaton.NFAH) string {
	var dot strings.Builder
	dot.WriteString("digraph NFA {\n")
	dot.WriteString("  rankdir=LR;\n")
	dot.WriteString("  node [shape=circle];\n")
	dot.WriteString("  __start__ [shape=point];\n")

	for _, id := range a.Initial() {
		fmt.Fprintf(&dot, "  __start__ -> state%d;\n", id)
	}

	for s := 0; s < a.States(); s++ {
		id := automaton.StateID(s)
		shape := "circle"
		if a.IsFinal(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&dot, "  state%d [label=\"State %d\", shape=%s];\n", s, s, shape)
	}

	for s := 0; s < a.States(); s++ {
		id := automaton.StateID(s)
		for _, t := range a.Transitions(id) {
			fmt.Fprintf(&dot, "  state%d -> state%d [label=\"(%q, %d)\"];\n", s, t.Target, t.Symbol, t.Track)
		}
	}

	dot.WriteString("}\n")
	return dot.String()
}
