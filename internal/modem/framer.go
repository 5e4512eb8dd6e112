package modem

import (
	"liveshellwave/internal/crc"
)

// Bit is a single line bit, 0 (space) or 1 (mark)
type Bit uint8

// FrameLength returns the number of bits Frame produces for a payload of n bytes
func FrameLength(n int) int {
	return PreambleBits + BitsPerFramedByte*(n+2) + PostambleBits
}

// Frame builds the line bitstream for a payload: preamble, each byte 8N1
// MSB first, the big-endian CRC-16 of the payload framed the same way, then
// the postamble. An empty payload still carries the (zero) CRC.
func Frame(payload []byte) []Bit {
	bits := make([]Bit, 0, FrameLength(len(payload)))

	bits = appendIdle(bits, PreambleBits)

	checksum := crc.Initial()
	for _, b := range payload {
		bits = appendFramedByte(bits, b)
		checksum = crc.Update(checksum, b)
	}

	// CRC is not part of its own computation
	bits = appendFramedByte(bits, byte(checksum>>8))
	bits = appendFramedByte(bits, byte(checksum))

	return appendIdle(bits, PostambleBits)
}

func appendIdle(bits []Bit, n int) []Bit {
	for i := 0; i < n; i++ {
		bits = append(bits, 1)
	}
	return bits
}

func appendFramedByte(bits []Bit, b byte) []Bit {
	bits = append(bits, 0)
	for i := 7; i >= 0; i-- {
		bits = append(bits, Bit((b>>i)&1))
	}
	return append(bits, 1)
}
