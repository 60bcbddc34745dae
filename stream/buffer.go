// Package stream implements the physical input plumbing (spec.md
// §4.M): per-track line sources, a multiplexing reader over them, and
// the driving loop that feeds lines into an engine.Engine as they
// arrive. Grounded on shared_buffer.rs, multi_stream_reader.rs, and
// reading_scheduler.rs.
package stream

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// ErrClosed names a closed source. No Source in this package returns
// it: a closed, drained Buffer reports io.EOF from ReadLine.
var ErrClosed = errors.New("stream: source closed")

// Source is a single per-track input: a sequence of lines that may
// arrive incrementally. Grounded on multi_stream_reader.rs's
// StreamSource trait (FileSource satisfies it for files and stdin;
// Buffer satisfies it for in-memory/test/programmatic feeds).
type Source interface {
	// ReadLine returns the next line, or io.EOF once the source is
	// exhausted and will never produce more. FileSource waits on its
	// reader for a line; Buffer returns ("", nil) while open and empty.
	ReadLine() (string, error)
	// Available reports whether a line can be read without blocking.
	Available() bool
}

// FileSource adapts a bufio.Reader (backing a file or stdin) to Source.
type FileSource struct {
	r *bufio.Reader
}

// NewFileSource wraps r as a line-oriented Source.
func NewFileSource(r io.Reader) *FileSource {
	return &FileSource{r: bufio.NewReader(r)}
}

// ReadLine reads one newline-terminated line, trimming the trailing
// newline, and returns io.EOF once the underlying reader is exhausted.
func (f *FileSource) ReadLine() (string, error) {
	line, err := f.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	return line, nil
}

// Available reports whether at least one byte is buffered or can be
// read. With nothing buffered it calls Peek(1), which reads from the
// underlying reader and waits for it.
func (f *FileSource) Available() bool {
	n := f.r.Buffered()
	if n > 0 {
		return true
	}
	_, err := f.r.Peek(1)
	return err == nil
}

// Buffer is a dynamic, concurrency-safe line queue: producers Push
// lines onto it (from any goroutine) and a single Source view drains
// them in order. Grounded on shared_buffer.rs's SharedBuffer.
type Buffer struct {
	mu     sync.Mutex
	lines  []string
	closed bool
}

// NewBuffer creates an empty, open Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Push appends a line to the buffer. Safe to call concurrently with
// ReadLine/Available from any goroutine.
func (b *Buffer) Push(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

// Close marks the buffer as never receiving more lines; once drained,
// ReadLine reports io.EOF instead of blocking.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// ReadLine pops the next queued line, or returns io.EOF if the buffer
// is closed and empty. A still-open, empty buffer returns ("", nil):
// callers poll via Available rather than blocking, matching the
// original's non-blocking SharedBuffer reads.
func (b *Buffer) ReadLine() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lines) == 0 {
		if b.closed {
			return "", io.EOF
		}
		return "", nil
	}
	line := b.lines[0]
	b.lines = b.lines[1:]
	return line, nil
}

// Available reports whether a line is queued and ready to read.
func (b *Buffer) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines) > 0
}
