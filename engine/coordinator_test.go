package engine

import (
	"sort"
	"testing"

	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/notify"
)

// buildA1Like mirrors naive_hyper_pattern_matching.rs's test_run automaton.
func buildA1Like(t *testing.T) *automaton.NFAH {
	return buildNonDetAutomaton(t)
}

func TestCoordinatorNaiveTwoStreams(t *testing.T) {
	a := buildA1Like(t)
	mem := notify.NewMemory()
	c := NewCoordinator(a, mem, 2)

	feed := [][2]string{{"a", "0"}, {"b", "1"}, {"a", "0"}, {"b", "1"}, {"c", "0"}, {"d", "1"}}
	for _, f := range feed {
		track := 0
		if f[1] == "1" {
			track = 1
		}
		c.Feed(f[0], track)
	}
	c.SetEOF(0)
	c.SetEOF(1)
	c.ConsumeRemaining()

	var forTuple []notify.Result
	for _, r := range mem.Results() {
		if len(r.IDs) == 2 && r.IDs[0] == 0 && r.IDs[1] == 1 {
			forTuple = append(forTuple, r)
		}
	}

	want := [][2]notify.Interval{
		{{0, 2}, {0, 2}},
		{{0, 2}, {1, 2}},
		{{0, 2}, {2, 2}},
		{{1, 2}, {0, 2}},
		{{1, 2}, {1, 2}},
		{{1, 2}, {2, 2}},
		{{2, 2}, {0, 2}},
		{{2, 2}, {1, 2}},
		{{2, 2}, {2, 2}},
	}

	if len(forTuple) != len(want) {
		t.Fatalf("expected %d matches for id-tuple [0,1], got %d: %+v", len(want), len(forTuple), forTuple)
	}

	sort.Slice(forTuple, func(i, j int) bool {
		a, b := forTuple[i].Intervals, forTuple[j].Intervals
		if a[0] != b[0] {
			return a[0].Start < b[0].Start
		}
		return a[1].Start < b[1].Start
	})
	sort.Slice(want, func(i, j int) bool {
		if want[i][0] != want[j][0] {
			return want[i][0].Start < want[j][0].Start
		}
		return want[i][1].Start < want[j][1].Start
	})

	for i, w := range want {
		got := forTuple[i].Intervals
		if got[0] != w[0] || got[1] != w[1] {
			t.Fatalf("match %d: expected %+v, got %+v", i, w, got)
		}
	}
}
