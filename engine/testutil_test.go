package engine

import (
	"sort"

	"github.com/coregx/hyperpattern/notify"
)

// filterByIDs returns the subset of results whose IDs equal want, in
// stable (sum of interval starts, then lexicographic) order — needed
// because every scheduler here accumulates matches into a map-backed
// configuration set with no defined iteration order.
func filterByIDs(results []notify.Result, want []int) []notify.Result {
	var out []notify.Result
	for _, r := range results {
		if len(r.IDs) != len(want) {
			continue
		}
		match := true
		for i, id := range want {
			if r.IDs[i] != id {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Intervals, out[j].Intervals
		for k := range a {
			if a[k] != b[k] {
				return a[k].Start < b[k].Start || (a[k].Start == b[k].Start && a[k].End < b[k].End)
			}
		}
		return false
	})
	return out
}

func intervalPairs(results []notify.Result) [][2]notify.Interval {
	out := make([][2]notify.Interval, len(results))
	for i, r := range results {
		out[i] = [2]notify.Interval{r.Intervals[0], r.Intervals[1]}
	}
	return out
}
