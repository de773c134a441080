package frame

import (
	"encoding/binary"

	"github.com/matthewhilton/rtk/internal/crc24q"
)

// Preamble marks the first byte of every RTCM3 frame.
const Preamble = 0xD3

const (
	HeaderLen     = 3
	TrailerLen    = crc24q.TrailerLen
	Overhead      = HeaderLen + TrailerLen
	MaxPayloadLen = 0x3FF

	reservedMask = 0xFC00
)

// Frame is one checksum-verified RTCM3 message.
type Frame struct {
	// Offset is the position of the preamble in the scanned buffer.
	Offset  int
	Length  int
	Payload []byte
}

// Stats counts the candidates the scanner rejected while resynchronising.
type Stats struct {
	Frames      int
	Skipped     int
	Truncated   int
	BadChecksum int
	ReservedSet int
}

// Options tunes how candidates are accepted.
type Options struct {
	// StrictReserved rejects candidates whose six reserved header bits are
	// not zero instead of masking them out.
	StrictReserved bool
}

// Scanner walks a buffer and yields verified frames in input order.
type Scanner struct {
	buf    []byte
	offset int
	opts   Options
	cur    Frame
	stats  Stats
}

// NewScanner returns a scanner positioned at the start of buf.
func NewScanner(buf []byte, opts Options) *Scanner {
	return &Scanner{buf: buf, opts: opts}
}

// Scan returns every verified frame in buf.
func Scan(buf []byte) []Frame {
	s := NewScanner(buf, Options{})
	var frames []Frame
	for s.Next() {
		frames = append(frames, s.Frame())
	}
	return frames
}

// Next advances to the next verified frame. It returns false once the
// buffer is exhausted.
func (s *Scanner) Next() bool {
	for s.offset < len(s.buf) {
		n, ok := s.try(s.offset)
		if !ok {
			s.offset++
			s.stats.Skipped++
			continue
		}
		s.offset += n
		s.stats.Frames++
		return true
	}
	return false
}

// Frame returns the frame found by the last successful call to Next.
func (s *Scanner) Frame() Frame { return s.cur }

// Offset returns the cursor position.
func (s *Scanner) Offset() int { return s.offset }

// Stats returns the counters accumulated so far.
func (s *Scanner) Stats() Stats { return s.stats }

// try validates a candidate frame at off and returns its total size.
func (s *Scanner) try(off int) (int, bool) {
	data := s.buf[off:]
	if data[0] != Preamble {
		return 0, false
	}
	if len(data) < HeaderLen {
		s.stats.Truncated++
		return 0, false
	}
	header := binary.BigEndian.Uint16(data[1:HeaderLen])
	if header&reservedMask != 0 {
		s.stats.ReservedSet++
		if s.opts.StrictReserved {
			return 0, false
		}
	}
	length := int(header & MaxPayloadLen)
	total := length + Overhead
	if len(data) < total {
		s.stats.Truncated++
		return 0, false
	}
	if !crc24q.Valid(data[:total]) {
		s.stats.BadChecksum++
		return 0, false
	}
	payload := make([]byte, length)
	copy(payload, data[HeaderLen:HeaderLen+length])
	s.cur = Frame{Offset: off, Length: length, Payload: payload}
	return total, true
}
