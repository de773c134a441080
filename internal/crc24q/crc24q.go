// Package crc24q computes and verifies the 24-bit checksum that closes every
// RTCM3 frame.
package crc24q

import (
	gocrc "github.com/goblimey/go-crc24q/crc24q"
)

// Poly is the CRC24Q generator polynomial including the x^24 term.
const Poly = 0x1864CFB

// TrailerLen is the number of checksum bytes appended to a frame.
const TrailerLen = 3

var table = makeTable()

// Checksum computes the CRC24Q of data, MSB first, with a zero initial
// register and no reflection or final XOR. Running it over a frame including
// its trailing checksum yields zero when the frame is intact.
func Checksum(data []byte) uint32 {
	var crc uint32
	for _, b := range data {
		crc ^= uint32(b) << 16
		for i := 0; i < 8; i++ {
			crc <<= 1
			if crc&0x1000000 != 0 {
				crc ^= Poly
			}
		}
	}
	return crc & 0xFFFFFF
}

// Table computes the same value as Checksum using a byte-wise lookup table.
func Table(data []byte) uint32 {
	var crc uint32
	for _, b := range data {
		crc = ((crc << 8) & 0xFFFFFF) ^ table[byte(crc>>16)^b]
	}
	return crc
}

// Valid reports whether the last three bytes of frame hold the CRC24Q of
// the bytes before them.
func Valid(frame []byte) bool {
	if len(frame) < TrailerLen+3 {
		return false
	}
	body := frame[:len(frame)-TrailerLen]
	trailer := frame[len(frame)-TrailerLen:]
	crc := gocrc.Hash(body)
	return gocrc.HiByte(crc) == trailer[0] &&
		gocrc.MiByte(crc) == trailer[1] &&
		gocrc.LoByte(crc) == trailer[2]
}

func makeTable() [256]uint32 {
	var t [256]uint32
	for i := range t {
		t[i] = Checksum([]byte{byte(i)})
	}
	return t
}
