package attract

import (
	"bytes"
	"testing"
)

// jpegFrame builds a minimal marker-framed blob with the given payload.
func jpegFrame(payload []byte) []byte {
	var b []byte
	b = append(b, 0xFF, markerSOI)
	b = append(b, payload...)
	b = append(b, 0xFF, markerEOI)
	return b
}

// TestStream_TwoFrames tests demuxing back to back frames
func TestStream_TwoFrames(t *testing.T) {
	f1 := jpegFrame([]byte{0x01, 0x02, 0x03})
	f2 := jpegFrame([]byte{0x04, 0x05})
	s := NewStream(append(append([]byte{}, f1...), f2...))

	if got := s.Next(); !bytes.Equal(got, f1) {
		t.Errorf("frame 1: expected % X, got % X", f1, got)
	}
	if got := s.Next(); !bytes.Equal(got, f2) {
		t.Errorf("frame 2: expected % X, got % X", f2, got)
	}
	if got := s.Next(); got != nil {
		t.Errorf("after last frame: expected nil, got % X", got)
	}
}

// TestStream_LeadingGarbage tests that bytes before the first start
// marker are skipped
func TestStream_LeadingGarbage(t *testing.T) {
	frame := jpegFrame([]byte{0xAA})
	data := append([]byte{0x00, 0x11, 0x22}, frame...)
	s := NewStream(data)

	if got := s.Next(); !bytes.Equal(got, frame) {
		t.Errorf("expected % X, got % X", frame, got)
	}
}

// TestStream_UnterminatedFrame tests that a start marker without an end
// marker exhausts the stream
func TestStream_UnterminatedFrame(t *testing.T) {
	data := []byte{0xFF, markerSOI, 0x01, 0x02, 0x03}
	s := NewStream(data)

	if got := s.Next(); got != nil {
		t.Errorf("unterminated frame: expected nil, got % X", got)
	}
}

// TestStream_Empty tests empty and marker-free streams
func TestStream_Empty(t *testing.T) {
	if got := NewStream(nil).Next(); got != nil {
		t.Errorf("empty stream: expected nil, got % X", got)
	}
	if got := NewStream([]byte{0x00, 0x01, 0x02}).Next(); got != nil {
		t.Errorf("marker-free stream: expected nil, got % X", got)
	}
}

// TestStream_Rewind tests replaying the clip from the top
func TestStream_Rewind(t *testing.T) {
	frame := jpegFrame([]byte{0x42})
	s := NewStream(frame)

	if got := s.Next(); got == nil {
		t.Fatal("first pass: no frame")
	}
	if got := s.Next(); got != nil {
		t.Fatal("stream not exhausted")
	}

	s.Rewind()
	if got := s.Next(); !bytes.Equal(got, frame) {
		t.Errorf("after rewind: expected % X, got % X", frame, got)
	}
}
