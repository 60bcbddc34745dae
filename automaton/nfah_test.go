package automaton

import "testing"

func buildA1() *NFAH {
	b := NewBuilder(2)
	s1 := b.AddState(true, false)
	s12 := b.AddState(false, false)
	s2 := b.AddState(false, false)
	s13 := b.AddState(false, false)
	s3 := b.AddState(false, true)

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(b.AddTransition(s1, "a", 0, s12))
	must(b.AddTransition(s12, "b", 1, s2))
	must(b.AddTransition(s1, "a", 0, s1))
	must(b.AddTransition(s1, "b", 1, s1))
	must(b.AddTransition(s1, "c", 0, s13))
	must(b.AddTransition(s13, "d", 1, s3))
	return b.Build()
}

func TestBuilderAddState(t *testing.T) {
	b := NewBuilder(2)
	s := b.AddState(true, false)
	nfah := b.Build()
	if nfah.IsFinal(s) {
		t.Fatalf("expected non-final state")
	}
	if len(nfah.Initial()) != 1 || nfah.Initial()[0] != s {
		t.Fatalf("expected state to be initial")
	}
}

func TestAddTransitionInvalidTrack(t *testing.T) {
	b := NewBuilder(1)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, true)
	if err := b.AddTransition(s0, "a", 5, s1); err == nil {
		t.Fatalf("expected error for out of range track")
	}
}

func TestRemoveUnreachable(t *testing.T) {
	b := NewBuilder(1)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, true)
	unreachable := b.AddState(false, false)
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddTransition(s0, "a", 0, s1))
	must(b.AddTransition(unreachable, "x", 0, s0))
	nfah := b.Build()
	if len(nfah.Transitions(unreachable)) != 0 {
		t.Fatalf("expected unreachable state's transitions to be pruned")
	}
	if len(nfah.Transitions(s0)) != 1 {
		t.Fatalf("expected reachable state's transitions preserved")
	}
}

func TestA1Structure(t *testing.T) {
	a1 := buildA1()
	if a1.States() != 5 {
		t.Fatalf("expected 5 states, got %d", a1.States())
	}
	if len(a1.Initial()) != 1 {
		t.Fatalf("expected 1 initial state")
	}
}
