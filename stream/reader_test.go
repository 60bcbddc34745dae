package stream

import "testing"

// TestMultiReaderDynamicBuffers grounds multi_stream_reader.rs's
// test_dynamic_buffer.
func TestMultiReaderDynamicBuffers(t *testing.T) {
	b1 := NewBuffer()
	b2 := NewBuffer()
	b1.Push("dynamic line1")
	b1.Push("dynamic line2")
	b2.Push("buffer lineA")
	b2.Push("buffer lineB")

	reader := NewMultiReader([]Source{b1, b2})
	if reader.Size() != 2 {
		t.Fatalf("expected size 2, got %d", reader.Size())
	}

	if line, err := reader.ReadLine(0); err != nil || line != "dynamic line1" {
		t.Fatalf("unexpected: %q %v", line, err)
	}
	if line, err := reader.ReadLine(0); err != nil || line != "dynamic line2" {
		t.Fatalf("unexpected: %q %v", line, err)
	}
	if line, err := reader.ReadLine(1); err != nil || line != "buffer lineA" {
		t.Fatalf("unexpected: %q %v", line, err)
	}
	if line, err := reader.ReadLine(1); err != nil || line != "buffer lineB" {
		t.Fatalf("unexpected: %q %v", line, err)
	}
}

// TestMultiReaderAvailability grounds
// multi_stream_reader.rs's test_is_available_with_temp_files.
func TestMultiReaderAvailability(t *testing.T) {
	b1 := NewBuffer()
	b2 := NewBuffer()
	b1.Push("line1")
	b1.Push("line2")

	reader := NewMultiReader([]Source{b1, b2})

	if avail, _ := reader.Available(0); !avail {
		t.Fatal("expected stream 0 available")
	}
	reader.ReadLine(0)
	if avail, _ := reader.Available(0); !avail {
		t.Fatal("expected stream 0 still available")
	}
	reader.ReadLine(0)
	if avail, _ := reader.Available(0); avail {
		t.Fatal("expected stream 0 drained")
	}
	if avail, _ := reader.Available(1); avail {
		t.Fatal("expected stream 1 empty and unavailable")
	}
}

func TestMultiReaderInvalidIndex(t *testing.T) {
	reader := NewMultiReader([]Source{NewBuffer()})
	if _, err := reader.ReadLine(5); err == nil {
		t.Fatal("expected error for out-of-range track")
	}
	if _, err := reader.Available(5); err == nil {
		t.Fatal("expected error for out-of-range track")
	}
}
