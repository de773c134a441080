package testutil

import (
	"github.com/matthewhilton/rtk/internal/crc24q"
)

// Frame wraps payload in an RTCM3 envelope with a valid checksum.
func Frame(payload []byte) []byte {
	return FrameWithHeader(uint16(len(payload)&0x3FF), payload)
}

// FrameWithHeader wraps payload using the given raw 16-bit header word,
// letting tests set the reserved bits.
func FrameWithHeader(header uint16, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+6)
	out = append(out, 0xD3, byte(header>>8), byte(header))
	out = append(out, payload...)
	crc := crc24q.Checksum(out)
	return append(out, byte(crc>>16), byte(crc>>8), byte(crc))
}

// Field is one bit field to pack into a payload.
type Field struct {
	Width int
	Value uint64
}

// Pack writes fields back to back, MSB first, and pads the result to a
// whole number of bytes.
func Pack(fields ...Field) []byte {
	total := 0
	for _, f := range fields {
		total += f.Width
	}
	buf := make([]byte, (total+7)/8)
	pos := 0
	for _, f := range fields {
		for i := f.Width - 1; i >= 0; i-- {
			if f.Value>>uint(i)&1 != 0 {
				buf[pos/8] |= 1 << (7 - pos%8)
			}
			pos++
		}
	}
	return buf
}

// Signed encodes v as a two's complement field of the given width.
func Signed(width int, v int64) Field {
	return Field{Width: width, Value: uint64(v) & (1<<uint(width) - 1)}
}
