package serialize

import (
	"testing"

	"github.com/coregx/hyperpattern/automaton"
)

// buildSample mirrors serialization.rs::test_serialize_deserialize's automaton.
func buildSample(t *testing.T) *automaton.NFAH {
	b := automaton.NewBuilder(2)
	s0 := b.AddState(true, false)
	s1 := b.AddState(false, true)
	s2 := b.AddState(false, false)

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddTransition(s0, "a", 0, s1))
	must(b.AddTransition(s0, "b", 1, s2))
	must(b.AddTransition(s1, "c", 0, s2))
	must(b.AddTransition(s2, "d", 1, s0))
	return b.Build()
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	a := buildSample(t)

	data, err := MarshalNFAH(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := UnmarshalNFAH(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Dims() != a.Dims() {
		t.Fatalf("expected dims %d, got %d", a.Dims(), got.Dims())
	}
	if got.States() != 3 {
		t.Fatalf("expected 3 states, got %d", got.States())
	}

	transitionCount := 0
	for s := 0; s < got.States(); s++ {
		transitionCount += len(got.Transitions(automaton.StateID(s)))
	}
	if transitionCount != 4 {
		t.Fatalf("expected 4 transitions, got %d", transitionCount)
	}

	if len(got.Initial()) != 1 || !got.IsFinal(1) {
		t.Fatalf("expected state 0 initial and state 1 final to survive round-trip")
	}
}

func TestUnmarshalRejectsUnknownTransitionTarget(t *testing.T) {
	bad := []byte(`{"dimensions":1,"states":[{"id":0,"is_initial":true,"is_final":false}],
		"transitions":[{"from":0,"to":99,"symbol":"a","track":0}]}`)
	if _, err := UnmarshalNFAH(bad); err == nil {
		t.Fatal("expected error for transition referencing unknown state id")
	}
}
