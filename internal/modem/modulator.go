package modem

// SampleCount returns the number of samples Modulate produces for n bits
func SampleCount(bitCount int) int {
	return bitCount * SamplesPerBit * RepeatCount
}

// Modulate maps every bit onto its tone period and repeats the whole frame
// RepeatCount times with no gap between copies.
func Modulate(bits []Bit) []float32 {
	frameLen := len(bits) * SamplesPerBit
	samples := make([]float32, frameLen*RepeatCount)

	offset := 0
	for _, bit := range bits {
		offset += copy(samples[offset:], carrier(bit))
	}

	for i := 1; i < RepeatCount; i++ {
		copy(samples[i*frameLen:], samples[:frameLen])
	}

	return samples
}

// Encode frames and modulates a payload
func Encode(payload []byte) []float32 {
	return Modulate(Frame(payload))
}
