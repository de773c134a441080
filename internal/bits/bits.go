// Package bits reads big-endian bit fields from byte buffers. Bit 0 is the
// most significant bit of buf[0].
package bits

import (
	"errors"
	"fmt"
)

// MaxWidth is the widest field Uint and Int can return.
const MaxWidth = 64

// ErrOutOfRange is returned when a read extends past the end of the buffer.
var ErrOutOfRange = errors.New("bit field out of range")

// Uint returns length bits starting at bit start as an unsigned integer.
// The first bit read is the most significant bit of the result.
func Uint(buf []byte, start, length int) (uint64, error) {
	if err := check(buf, start, length); err != nil {
		return 0, err
	}
	var v uint64
	pos := start
	end := start + length
	// leading partial byte
	for pos < end && pos%8 != 0 {
		v = v<<1 | uint64(buf[pos/8]>>(7-pos%8)&1)
		pos++
	}
	for end-pos >= 8 {
		v = v<<8 | uint64(buf[pos/8])
		pos += 8
	}
	for pos < end {
		v = v<<1 | uint64(buf[pos/8]>>(7-pos%8)&1)
		pos++
	}
	return v, nil
}

// Int returns length bits starting at bit start as a two's complement
// signed integer.
func Int(buf []byte, start, length int) (int64, error) {
	u, err := Uint(buf, start, length)
	if err != nil {
		return 0, err
	}
	return signExtend(u, length), nil
}

func signExtend(u uint64, length int) int64 {
	if length == 0 || length == MaxWidth {
		return int64(u)
	}
	if u&(1<<(length-1)) != 0 {
		u |= ^uint64(0) << length
	}
	return int64(u)
}

func check(buf []byte, start, length int) error {
	if start < 0 || length < 0 || length > MaxWidth {
		return fmt.Errorf("%w: start %d length %d", ErrOutOfRange, start, length)
	}
	size := len(buf) * 8
	if start > size || length > size-start {
		return fmt.Errorf("%w: %d bits at %d exceed %d-bit buffer", ErrOutOfRange, length, start, size)
	}
	return nil
}
