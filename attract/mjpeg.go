// Package attract plays the embedded promotional clip, a motion JPEG
// stream presented full screen with wall clock pacing.
package attract

// JPEG stream markers.
const (
	markerSOI = 0xD8
	markerEOI = 0xD9
)

// Stream walks a motion JPEG byte stream frame by frame. Frames run
// from a start-of-image marker to the next end-of-image marker
// inclusive. No allocation; returned frames alias the stream.
type Stream struct {
	data []byte
	pos  int
}

// NewStream creates a demuxer over the clip bytes.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// Next returns the next complete frame, or nil when the stream holds no
// further start marker or the final frame is unterminated.
func (s *Stream) Next() []byte {
	pos := s.pos

	for pos < len(s.data)-1 {
		if s.data[pos] == 0xFF && s.data[pos+1] == markerSOI {
			break
		}
		pos++
	}
	if pos >= len(s.data)-1 {
		return nil
	}

	start := pos
	pos += 2
	for pos < len(s.data)-1 {
		if s.data[pos] == 0xFF && s.data[pos+1] == markerEOI {
			pos += 2
			s.pos = pos
			return s.data[start:pos]
		}
		pos++
	}

	// Start marker with no matching end marker, treat as exhausted
	return nil
}

// Rewind returns the cursor to the top of the clip.
func (s *Stream) Rewind() {
	s.pos = 0
}
