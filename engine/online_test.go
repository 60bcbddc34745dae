package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/hyperpattern/notify"
)

// TestOnlineCoordinatorMatchesAssignment drives the same scenario as
// TestAssignmentSingle (single_hyper_pattern_matching.rs's
// test_single_hyper_pattern_matching) through OnlineCoordinator's
// Feed/SetEOF/ConsumeRemaining surface instead of a single prebuilt
// Assignment, and expects the id-tuple [0,1] to accumulate the same
// five matches once every track is fully read.
func TestOnlineCoordinatorMatchesAssignment(t *testing.T) {
	a := buildNonDetAutomaton(t)
	mem := notify.NewMemory()
	oc := NewOnlineCoordinator(a, mem, 2)

	feed := []struct {
		action string
		track  int
	}{
		{"a", 0}, {"b", 1},
		{"c", 0}, {"d", 1},
		{"a", 0}, {"b", 1},
	}
	for _, f := range feed {
		oc.Feed(f.action, f.track)
	}
	oc.SetEOF(0)
	oc.SetEOF(1)
	oc.ConsumeRemaining()

	got := filterByIDs(mem.Results(), []int{0, 1})
	want := []notify.Result{
		{Intervals: []notify.Interval{{0, 1}, {0, 1}}, IDs: []int{0, 1}},
		{Intervals: []notify.Interval{{0, 1}, {1, 1}}, IDs: []int{0, 1}},
		{Intervals: []notify.Interval{{1, 1}, {0, 1}}, IDs: []int{0, 1}},
		{Intervals: []notify.Interval{{1, 1}, {1, 1}}, IDs: []int{0, 1}},
		{Intervals: []notify.Interval{{1, 1}, {1, 1}}, IDs: []int{0, 1}},
	}
	require.Len(t, got, len(want))
	require.ElementsMatch(t, intervalPairs(want), intervalPairs(got))
}

// TestOnlineAssignmentDimensions exercises OnlineAssignment directly,
// the way online_single_hyper_pattern_matching.rs's own unit test
// constructs a single fixed assignment rather than a full coordinator.
func TestOnlineAssignmentDimensions(t *testing.T) {
	a := buildNonDetAutomaton(t)
	mem := notify.NewMemory()
	oc := NewOnlineCoordinator(a, mem, 2)
	require.Len(t, oc.assignments, 4)
	for _, asn := range oc.assignments {
		require.Equal(t, 2, asn.Dimensions())
	}
}
