package modem

import "math"

// WaveTable holds one bit period of each tone. Index 0 is the space tone
// (bit 0) and index 1 the mark tone (bit 1).
type WaveTable [2][SamplesPerBit]float32

// waveTable is built once at package initialization and only read afterwards
var waveTable = newWaveTable()

// newWaveTable samples both tones, rounding to the int16 grid the device
// firmware was recorded with.
func newWaveTable() *WaveTable {
	var table WaveTable
	for k := 0; k < SamplesPerBit; k++ {
		table[0][k] = toneSample(k, SpaceCyclesPerBit)
		table[1][k] = toneSample(k, MarkCyclesPerBit)
	}
	return &table
}

func toneSample(k, cycles int) float32 {
	phase := 2 * math.Pi * float64(k) * float64(cycles) / SamplesPerBit
	return float32(math.Round(WaveAmplitude*math.Sin(phase)) / Int16Scale)
}

// Tones returns a copy of the precomputed wave table
func Tones() WaveTable {
	return *waveTable
}

// carrier returns the shared one-bit waveform for a bit value
func carrier(bit Bit) []float32 {
	if bit != 0 {
		return waveTable[1][:]
	}
	return waveTable[0][:]
}
