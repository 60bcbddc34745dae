// Package notify implements the result notifier (spec.md §4.L): the
// sink that matching engines report accepted k-tuples of intervals to.
// Grounded on result_notifier.rs's ResultNotifier trait and its
// Stdout/File/SharedBuffer implementations.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/projectdiscovery/gologger"
)

// Interval is a half-open... no, an inclusive [Start,End] match window
// on one track, matching MatchingInterval's (start, end) semantics.
type Interval struct {
	Start int
	End   int
}

// Result bundles one accepted match: one interval per participating
// track, paired with which physical input stream id fed each track.
type Result struct {
	Intervals []Interval
	IDs       []int
}

// Notifier receives accepted matches as they are found.
type Notifier interface {
	Notify(result Result)
}

func format(result Result) string {
	var sb strings.Builder
	for i, iv := range result.Intervals {
		fmt.Fprintf(&sb, "%d: (%d, %d)", result.IDs[i], iv.Start, iv.End)
		if i+1 < len(result.Intervals) {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// Stdout writes every result as one line via gologger, matching the
// teacher stack's ambient logging rather than a bare fmt.Println.
type Stdout struct{}

// Notify prints result to the configured logger's info stream.
func (Stdout) Notify(result Result) {
	gologger.Info().Msg(format(result))
}

// File writes every result as one line to an underlying io.Writer
// (typically an *os.File), guarded by a mutex since a notifier may be
// shared across several concurrently-running per-assignment matchers.
type File struct {
	mu sync.Mutex
	w  io.Writer
}

// NewFile wraps w as a File notifier.
func NewFile(w io.Writer) *File {
	return &File{w: w}
}

// Notify writes result as one line to the underlying writer.
func (f *File) Notify(result Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintln(f.w, format(result))
}

// Memory accumulates results in memory, for tests and for embedding
// the matcher as a library rather than a CLI. Grounded on
// result_notifier.rs's SharedBufferResultNotifier, adapted to a plain
// mutex-guarded slice since Go has no direct analogue of the teacher's
// channel-backed SharedBuffer for this simple accumulate-and-read use.
type Memory struct {
	mu      sync.Mutex
	results []Result
}

// NewMemory creates an empty in-memory notifier.
func NewMemory() *Memory { return &Memory{} }

// Notify appends result to the in-memory log.
func (m *Memory) Notify(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

// Results returns a deep copy of every result recorded so far, in
// notification order, so callers can freely mutate what they get back.
func (m *Memory) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Result, len(m.results))
	for i, r := range m.results {
		out[i].Intervals = append([]Interval(nil), r.Intervals...)
		out[i].IDs = append([]int(nil), r.IDs...)
	}
	return out
}
