package matcher

import (
	"github.com/coregx/hyperpattern/streamlog"
)

// Masked pairs a track symbol with whether it is known to fall inside
// some accepted match window.
type Masked struct {
	Symbol  string
	Matched bool
}

// Filter masks the elements of one track's stream that provably never
// participate in any match of a given pattern, replacing them with an
// unmatched marker while preserving ones inside the matcher's current
// window. It trails the earliest-start matcher by exactly as many
// elements as remain ambiguous: an element is only emitted once the
// matcher's earliest active starting position has moved past it.
// Grounded on matching_filter.rs's MatchingFilter.
type Filter struct {
	matcher *Earliest
	input   *streamlog.View[string]
	queue   []queuedSymbol
	output  *streamlog.Sequence[Masked]
}

type queuedSymbol struct {
	symbol  string
	matched bool
}

// NewFilter creates a Filter reading from input through matcher,
// writing masked output to a fresh internal sequence.
func NewFilter(matcher *Earliest, input *streamlog.View[string]) *Filter {
	return &Filter{matcher: matcher, input: input, output: streamlog.New[Masked]()}
}

// Output returns a view over the filter's masked output stream.
func (f *Filter) Output() *streamlog.View[Masked] { return f.output.View() }

// ConsumeInput drains every symbol currently visible on the input
// view, feeding each to the matcher and releasing elements to the
// output stream once they fall behind the matcher's earliest active
// start position. Elements inside the matcher's current best match are
// marked Matched; everything else is released unmatched.
func (f *Filter) ConsumeInput() {
	elements := f.input.ReadableSlice()

	for _, symbol := range elements {
		f.matcher.Feed(symbol)
		f.queue = append(f.queue, queuedSymbol{symbol: symbol})

		if bound, ok := f.matcher.EarliestStartingPosition(); ok {
			toMove := bound - f.output.Len()
			for i := 0; i < toMove; i++ {
				head := f.queue[0]
				f.queue = f.queue[1:]
				f.output.Append(Masked{Symbol: head.symbol, Matched: head.matched})
			}
			if i, ok := f.matcher.CurrentMatching(); ok {
				posInQueue := i - bound
				for j := posInQueue; j < len(f.queue); j++ {
					f.queue[j].matched = true
				}
			}
		} else {
			for _, q := range f.queue {
				f.output.Append(Masked{Symbol: q.symbol, Matched: q.matched})
			}
			f.queue = f.queue[:0]
		}
	}

	f.input.Advance(len(elements))
	f.checkClosed()
}

// checkClosed flushes any remaining queued elements and closes the
// output stream once the input view's backing sequence is closed.
func (f *Filter) checkClosed() {
	if f.input.IsClosed() && !f.output.IsClosed() {
		for _, q := range f.queue {
			f.output.Append(Masked{Symbol: q.symbol, Matched: q.matched})
		}
		f.queue = f.queue[:0]
		f.output.Close()
	}
}
