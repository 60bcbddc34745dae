package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/hyperpattern/notify"
)

// feedBoth drives the same (action, track) sequence into two engines in
// lockstep, the way a single Driver would, so their outputs can be
// compared directly.
func feedBoth(e1, e2 Engine, feed []struct {
	action string
	track  int
}) {
	for _, f := range feed {
		e1.Feed(f.action, f.track)
		e2.Feed(f.action, f.track)
	}
	for _, track := range []int{0, 1} {
		e1.SetEOF(track)
		e2.SetEOF(track)
	}
	e1.ConsumeRemaining()
	e2.ConsumeRemaining()
}

// TestFilteredCoordinatorMatchesNaive checks the defining property of
// spec.md §4.F/§4.K's filter-skipped scheduler branch: a matcher.Filter
// only proves a start position impossible, it never changes which
// matches are ultimately reported. Grounded on matching_filter.rs being
// wired directly in front of naive_hyper_pattern_matching.rs with no
// change to its accepted-match semantics.
func TestFilteredCoordinatorMatchesNaive(t *testing.T) {
	a := buildA1Like(t)
	feed := []struct {
		action string
		track  int
	}{
		{"a", 0}, {"b", 1},
		{"a", 0}, {"b", 1},
		{"c", 0}, {"d", 1},
	}

	naiveMem := notify.NewMemory()
	naive := NewCoordinator(a, naiveMem, 2)
	filteredMem := notify.NewMemory()
	filtered := NewFilteredCoordinator(a, filteredMem, 2)

	feedBoth(naive, filtered, feed)

	want := filterByIDs(naiveMem.Results(), []int{0, 1})
	got := filterByIDs(filteredMem.Results(), []int{0, 1})
	require.ElementsMatch(t, intervalPairs(want), intervalPairs(got))
	require.NotEmpty(t, want, "scenario should produce at least one match")
}

// TestFilteredOnlineCoordinatorMatchesOnline is the online-scheduling
// counterpart of TestFilteredCoordinatorMatchesNaive.
func TestFilteredOnlineCoordinatorMatchesOnline(t *testing.T) {
	a := buildNonDetAutomaton(t)
	feed := []struct {
		action string
		track  int
	}{
		{"a", 0}, {"b", 1},
		{"c", 0}, {"d", 1},
		{"a", 0}, {"b", 1},
	}

	onlineMem := notify.NewMemory()
	online := NewOnlineCoordinator(a, onlineMem, 2)
	filteredMem := notify.NewMemory()
	filtered := NewFilteredOnlineCoordinator(a, filteredMem, 2)

	feedBoth(online, filtered, feed)

	want := filterByIDs(onlineMem.Results(), []int{0, 1})
	got := filterByIDs(filteredMem.Results(), []int{0, 1})
	require.ElementsMatch(t, intervalPairs(want), intervalPairs(got))
	require.NotEmpty(t, want, "scenario should produce at least one match")
}
