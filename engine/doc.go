// Package engine implements the per-assignment matcher (spec.md §4.J,
// component "single hyper pattern matching") and the multi-assignment
// coordinators that drive one matcher per legal stream-to-track
// assignment (§4.K), in four scheduling variants: naive (Assignment /
// Coordinator), online (OnlineAssignment), skip-accelerated FJS
// (FJSCoordinator), and filtered (NewFilteredCoordinator and
// NewFilteredOnlineCoordinator, wrapping the naive and online
// coordinators in §4.F's matching filter; there is no filtered FJS
// variant). All variants share the
// configuration-set runner in package runner. Grounded on
// hyper_pattern_matching.rs, single_hyper_pattern_matching.rs,
// naive_hyper_pattern_matching.rs, online_single_hyper_pattern_matching.rs,
// fjs_hyper_pattern_matching.rs, and fjs_single_hyper_pattern_matching.rs.
package engine

// Engine is the interface stream.Driver drives: feed one action at a
// time to a track, close a track once its source is exhausted, and
// drain whatever matching work remains once every track is closed.
// *Coordinator, *FilteredCoordinator, *FJSCoordinator,
// *OnlineCoordinator, and *FilteredOnlineCoordinator all satisfy it.
type Engine interface {
	Feed(action string, track int)
	SetEOF(track int)
	ConsumeRemaining()
}
