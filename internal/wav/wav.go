package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// RIFF/WAVE layout constants for 16-bit PCM mono
const (
	HeaderSize    = 44
	FormatPCM     = 1
	Channels      = 1
	BitsPerSample = 16
	BlockAlign    = Channels * BitsPerSample / 8

	fmtChunkSize = 16
)

// DataSize returns the size of the data chunk for n samples
func DataSize(sampleCount int) int {
	return sampleCount * BlockAlign
}

// Header builds the canonical 44-byte header for sampleCount mono samples
func Header(sampleCount, sampleRate int) []byte {
	dataSize := uint32(DataSize(sampleCount))
	header := make([]byte, HeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], HeaderSize-8+dataSize)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], Channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*BlockAlign))
	binary.LittleEndian.PutUint16(header[32:34], BlockAlign)
	binary.LittleEndian.PutUint16(header[34:36], BitsPerSample)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}

// PCM16 converts a float sample to a signed 16-bit value. The sample is
// clamped to [-1, 1]; negative values scale by 32768 and the rest by 32767,
// truncating toward zero.
func PCM16(sample float32) int16 {
	s := float64(sample)
	switch {
	case math.IsNaN(s):
		return 0
	case s < -1:
		s = -1
	case s > 1:
		s = 1
	}
	if s < 0 {
		return int16(s * 0x8000)
	}
	return int16(s * 0x7fff)
}

// Encode packs samples into a complete WAV file
func Encode(samples []float32, sampleRate int) []byte {
	out := make([]byte, HeaderSize+DataSize(len(samples)))
	copy(out, Header(len(samples), sampleRate))

	offset := HeaderSize
	for _, s := range samples {
		binary.LittleEndian.PutUint16(out[offset:], uint16(PCM16(s)))
		offset += BlockAlign
	}

	return out
}

// Write streams a WAV file for samples to w
func Write(w io.Writer, samples []float32, sampleRate int) error {
	if _, err := w.Write(Encode(samples, sampleRate)); err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	return nil
}
