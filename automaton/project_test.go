package automaton

import "testing"

// buildSkipExample constructs the automaton shared by spec.md's KMP and
// QS worked examples: s0 --(c,0)--> s1 --(c,1)--> s2 --(a,0)--> s3
// --(b,1)--> s2 --(c,0)--> sf.
func buildSkipExample(t testHelper) (*NFAH, map[string]StateID) {
	b := NewBuilder(2)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, false)
	s2 := b.AddState(false, false)
	s3 := b.AddState(false, false)
	sf := b.AddState(false, true)

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddTransition(s0, "c", 0, s1))
	must(b.AddTransition(s1, "c", 1, s2))
	must(b.AddTransition(s2, "a", 0, s3))
	must(b.AddTransition(s3, "b", 1, s2))
	must(b.AddTransition(s2, "c", 0, sf))

	return b.Build(), map[string]StateID{"s0": s0, "s1": s1, "s2": s2, "s3": s3, "sf": sf}
}

type testHelper interface {
	Fatal(args ...any)
}

func TestShortestAcceptedWordLength(t *testing.T) {
	nfah, _ := buildSkipExample(t)
	length, ok := ShortestAcceptedWordLength(nfah)
	if !ok {
		t.Fatalf("expected automaton to accept something")
	}
	if length != 3 {
		t.Fatalf("expected shortest accepted word length 3, got %d", length)
	}
}

func TestAcceptedPrefixesProjection(t *testing.T) {
	nfah, _ := buildSkipExample(t)
	length, _ := ShortestAcceptedWordLength(nfah)
	prefixes := AcceptedPrefixes(nfah, length)
	if len(prefixes) != 1 {
		t.Fatalf("expected exactly 1 shortest accepted word, got %d", len(prefixes))
	}
	track0 := ProjectLabels(prefixes[0], 0)
	track1 := ProjectLabels(prefixes[0], 1)
	if len(track0) != 2 || track0[0] != "c" || track0[1] != "c" {
		t.Fatalf("unexpected track0 projection: %v", track0)
	}
	if len(track1) != 1 || track1[0] != "c" {
		t.Fatalf("unexpected track1 projection: %v", track1)
	}
}

func TestProjectDFAAcceptsProjectedWord(t *testing.T) {
	nfah, ids := buildSkipExample(t)
	dfa0 := Project(nfah, 0)
	// track 0 word is "c", "a", "c" (from s0->s1 on c, s2->s3 on a, s2->sf on c)
	cur := dfa0.Initial()[0]
	for _, sym := range []string{"c", "a", "c"} {
		next, ok := dfa0.Step(cur, sym)
		if !ok {
			t.Fatalf("no transition for %q from state %d", sym, cur)
		}
		cur = next
	}
	if !dfa0.IsFinal(cur) {
		t.Fatalf("expected final state after consuming track-0 projection")
	}
	_ = ids
}

func TestProjectWithFinal(t *testing.T) {
	nfah, ids := buildSkipExample(t)
	// Projection onto track 0, forcing s2 final: only a path reaching
	// s2 (i.e. just "c") should now be accepting.
	dfa := ProjectWithFinal(nfah, 0, ids["s2"])
	cur := dfa.Initial()[0]
	next, ok := dfa.Step(cur, "c")
	if !ok {
		t.Fatalf("expected a transition on 'c'")
	}
	if !dfa.IsFinal(next) {
		t.Fatalf("expected state reached by 'c' to be final (forced final = s2)")
	}
}

func TestMakeCompleteAndNegate(t *testing.T) {
	b := NewBuilder(1)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, true)
	if err := b.AddTransition(s0, "1", 0, s1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(s1, "1", 0, s1); err != nil {
		t.Fatal(err)
	}
	nfah := b.Build()
	dfa := Project(nfah, 0)
	dfa.MakeComplete([]string{"0", "1"})

	accepts := func(d *DFA, word []string) bool {
		cur := d.Initial()[0]
		for _, sym := range word {
			next, ok := d.Step(cur, sym)
			if !ok {
				return false
			}
			cur = next
		}
		return d.IsFinal(cur)
	}

	if !accepts(dfa, []string{"1"}) {
		t.Fatalf("expected DFA to accept [1]")
	}
	if accepts(dfa, []string{"0"}) {
		t.Fatalf("expected DFA to reject [0]")
	}

	neg := dfa.Negate()
	if accepts(neg, []string{"1"}) {
		t.Fatalf("expected negated DFA to reject [1]")
	}
	if !accepts(neg, []string{"0"}) {
		t.Fatalf("expected negated DFA to accept [0]")
	}
}

func TestMinimizeBrzozowskiPreservesLanguage(t *testing.T) {
	// DFA accepting binary strings containing "11" as a substring.
	b := NewBuilder(1)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, false)
	s2 := b.AddState(false, true)
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddTransition(s0, "0", 0, s0))
	must(b.AddTransition(s0, "1", 0, s1))
	must(b.AddTransition(s1, "0", 0, s0))
	must(b.AddTransition(s1, "1", 0, s2))
	must(b.AddTransition(s2, "0", 0, s2))
	must(b.AddTransition(s2, "1", 0, s2))
	nfah := b.Build()
	dfa := Project(nfah, 0)
	dfa.MakeComplete([]string{"0", "1"})
	min := dfa.MinimizeBrzozowski()

	accepts := func(d *DFA, word []string) bool {
		cur := d.Initial()[0]
		for _, sym := range word {
			next, ok := d.Step(cur, sym)
			if !ok {
				return false
			}
			cur = next
		}
		return d.IsFinal(cur)
	}

	cases := []struct {
		word   []string
		expect bool
	}{
		{[]string{"0", "0", "1", "0"}, false},
		{[]string{"1", "1"}, true},
		{[]string{"1", "0", "1", "1", "0"}, true},
		{[]string{"0", "1", "0", "1", "0"}, false},
	}
	for _, c := range cases {
		if got := accepts(min, c.word); got != c.expect {
			t.Fatalf("word %v: expected %v, got %v", c.word, c.expect, got)
		}
	}
}
