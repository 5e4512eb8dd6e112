package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDeviceModel_SampleRate tests the sample rate table
func TestDeviceModel_SampleRate(t *testing.T) {
	tests := []struct {
		name     string
		model    DeviceModel
		expected int
	}{
		{name: "LiveShell2", model: LiveShell2, expected: 16000},
		{name: "LiveShellPro", model: LiveShellPro, expected: 44100},
		{name: "LiveShellX", model: LiveShellX, expected: 48000},
		{name: "Unknown falls back to Pro", model: DeviceModel(42), expected: 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.SampleRate())
		})
	}
}

// TestDeviceModel_ZeroValue tests that the zero value is the default model
func TestDeviceModel_ZeroValue(t *testing.T) {
	var model DeviceModel
	assert.Equal(t, LiveShellPro, model)
}

// TestParseDeviceModel tests name parsing
func TestParseDeviceModel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DeviceModel
		wantErr  bool
	}{
		{name: "Empty selects default", input: "", expected: LiveShellPro},
		{name: "Exact name", input: "LiveShellX", expected: LiveShellX},
		{name: "Lower case", input: "liveshell2", expected: LiveShell2},
		{name: "Padded", input: "  LIVESHELLPRO ", expected: LiveShellPro},
		{name: "Unknown", input: "LiveShell3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := ParseDeviceModel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, model)
			assert.Equal(t, model, mustParse(t, model.String()))
		})
	}
}

func mustParse(t *testing.T, name string) DeviceModel {
	t.Helper()
	model, err := ParseDeviceModel(name)
	if err != nil {
		t.Fatalf("ParseDeviceModel(%q): %v", name, err)
	}
	return model
}

// TestToneFrequencies tests mark/space frequencies and baud rate
func TestToneFrequencies(t *testing.T) {
	assert.Equal(t, 11025.0, MarkFrequency(44100))
	assert.Equal(t, 5512.5, SpaceFrequency(44100))
	assert.Equal(t, 1378.125, BaudRate(44100))
	assert.Equal(t, 4000.0, MarkFrequency(16000))
	assert.Equal(t, 6000.0, SpaceFrequency(48000))
	assert.InDelta(t, 0.1, Amplitude, 0.001)
}
