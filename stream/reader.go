package stream

import (
	"fmt"
)

// MultiReader multiplexes several Sources, indexed by track. Grounded
// on multi_stream_reader.rs's MultiStreamReader.
type MultiReader struct {
	sources []Source
}

// NewMultiReader wraps sources as a MultiReader, one per track, in order.
func NewMultiReader(sources []Source) *MultiReader {
	return &MultiReader{sources: sources}
}

// Size returns the number of tracks.
func (m *MultiReader) Size() int { return len(m.sources) }

// ReadLine reads the next line from track n.
func (m *MultiReader) ReadLine(n int) (string, error) {
	if n < 0 || n >= len(m.sources) {
		return "", fmt.Errorf("stream: invalid track index %d", n)
	}
	return m.sources[n].ReadLine()
}

// Available reports whether track n currently has a line ready without blocking.
func (m *MultiReader) Available(n int) (bool, error) {
	if n < 0 || n >= len(m.sources) {
		return false, fmt.Errorf("stream: invalid track index %d", n)
	}
	return m.sources[n].Available(), nil
}
