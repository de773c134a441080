package bits

import "fmt"

// Reader reads consecutive fields from a buffer. The first error is kept and
// every later read returns zero, so decoders can check Err once at the end.
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader returns a Reader positioned at bit start.
func NewReader(buf []byte, start int) *Reader {
	return &Reader{buf: buf, pos: start}
}

// Uint reads n bits as an unsigned value.
func (r *Reader) Uint(n int) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := Uint(r.buf, r.pos, n)
	if err != nil {
		r.err = err
		return 0
	}
	r.pos += n
	return v
}

// Int reads n bits as a signed value.
func (r *Reader) Int(n int) int64 {
	if r.err != nil {
		return 0
	}
	v, err := Int(r.buf, r.pos, n)
	if err != nil {
		r.err = err
		return 0
	}
	r.pos += n
	return v
}

// Bool reads a single bit.
func (r *Reader) Bool() bool {
	return r.Uint(1) == 1
}

// Skip advances past n bits, failing if they are not present.
func (r *Reader) Skip(n int) {
	if r.err != nil {
		return
	}
	if n < 0 || n > len(r.buf)*8-r.pos {
		r.err = fmt.Errorf("%w: skip %d bits at %d", ErrOutOfRange, n, r.pos)
		return
	}
	r.pos += n
}

// Pos returns the current bit position.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	if n := len(r.buf)*8 - r.pos; n > 0 {
		return n
	}
	return 0
}

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }
