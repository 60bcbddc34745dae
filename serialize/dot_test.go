package serialize

import (
	"strings"
	"testing"

	"github.com/coregx/hyperpattern/automaton"
)

// buildDotSample mirrors serialization.rs::test_automaton_to_dot's automaton.
func buildDotSample(t *testing.T) *automaton.NFAH {
	b := automaton.NewBuilder(1)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, true)
	s2 := b.AddState(false, false)

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddTransition(s0, "a", 0, s1))
	must(b.AddTransition(s1, "b", 0, s2))
	must(b.AddTransition(s2, "c", 0, s0))
	return b.Build()
}

func TestToDOT(t *testing.T) {
	a := buildDotSample(t)
	dot := ToDOT(a)

	checks := []string{
		"digraph NFA {",
		"__start__ -> state0;",
		`state0 [label="State 0", shape=circle];`,
		`state1 [label="State 1", shape=doublecircle];`,
		`state2 [label="State 2", shape=circle];`,
		`state0 -> state1 [label="("a", 0)"];`,
		`state1 -> state2 [label="("b", 0)"];`,
		`state2 -> state0 [label="("c", 0)"];`,
	}
	for _, want := range checks {
		if !strings.Contains(dot, want) {
			t.Fatalf("expected DOT output to contain %q, got:\n%s", want, dot)
		}
	}
}
