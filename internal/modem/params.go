package modem

import (
	"fmt"
	"strings"
)

// Frame and tone constants
const (
	PreambleBits  = 12 // Idle mark bits before the first byte
	PostambleBits = 12 // Idle mark bits after the CRC
	SamplesPerBit = 32 // Samples per bit period, at any sample rate
	RepeatCount   = 3  // Copies of the frame sent back to back

	BitsPerFramedByte = 10 // Start bit + 8 data bits + stop bit

	MarkCyclesPerBit  = 8 // sampleRate/4 over 32 samples
	SpaceCyclesPerBit = 4 // sampleRate/8 over 32 samples

	WaveAmplitude = 3276  // Peak amplitude on the int16 scale, about 10% of full scale
	Int16Scale    = 32768 // Divisor mapping int16 values onto [-1, 1)
)

// Amplitude is the tone peak as a fraction of full scale
const Amplitude = float64(WaveAmplitude) / Int16Scale

// DeviceModel selects the LiveShell variant, and with it the sample rate the
// device listens at.
type DeviceModel int

const (
	LiveShellPro DeviceModel = iota // default
	LiveShell2
	LiveShellX
)

// Sample rates per device model (Hz)
const (
	SampleRateLiveShell2   = 16000
	SampleRateLiveShellPro = 44100
	SampleRateLiveShellX   = 48000
)

var deviceNames = map[DeviceModel]string{
	LiveShell2:   "LiveShell2",
	LiveShellPro: "LiveShellPro",
	LiveShellX:   "LiveShellX",
}

var deviceSampleRates = map[DeviceModel]int{
	LiveShell2:   SampleRateLiveShell2,
	LiveShellPro: SampleRateLiveShellPro,
	LiveShellX:   SampleRateLiveShellX,
}

// DeviceModels lists the supported models in catalog order
func DeviceModels() []DeviceModel {
	return []DeviceModel{LiveShell2, LiveShellPro, LiveShellX}
}

// String returns the model name as the device family names it
func (d DeviceModel) String() string {
	if name, ok := deviceNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DeviceModel(%d)", int(d))
}

// SampleRate returns the sample rate for the model. Unknown models fall back
// to the LiveShellPro rate.
func (d DeviceModel) SampleRate() int {
	if rate, ok := deviceSampleRates[d]; ok {
		return rate
	}
	return SampleRateLiveShellPro
}

// ParseDeviceModel parses a model name case-insensitively. An empty name
// selects the default model.
func ParseDeviceModel(name string) (DeviceModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LiveShellPro, nil
	}
	for model, modelName := range deviceNames {
		if strings.EqualFold(name, modelName) {
			return model, nil
		}
	}
	return LiveShellPro, fmt.Errorf("unknown device model %q", name)
}

// BaudRate returns bits per second at the given sample rate
func BaudRate(sampleRate int) float64 {
	return float64(sampleRate) / SamplesPerBit
}

// MarkFrequency returns the bit-1 tone frequency (Hz) at the given sample rate
func MarkFrequency(sampleRate int) float64 {
	return float64(sampleRate) * MarkCyclesPerBit / SamplesPerBit
}

// SpaceFrequency returns the bit-0 tone frequency (Hz) at the given sample rate
func SpaceFrequency(sampleRate int) float64 {
	return float64(sampleRate) * SpaceCyclesPerBit / SamplesPerBit
}
