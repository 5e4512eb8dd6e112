package encoder

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liveshellwave/internal/modem"
	"liveshellwave/internal/protocol"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func youtubeConfig(key string) protocol.Config {
	return protocol.Config{
		Connection: protocol.ConnectionEthernet,
		IPMode:     protocol.IPModeDHCP,
		Streaming: protocol.Streaming{
			RTMPURL:   "rtmp://a.rtmp.youtube.com/live2",
			StreamKey: key,
		},
	}
}

// TestEncode_EthernetYouTube tests the end-to-end scenario
func TestEncode_EthernetYouTube(t *testing.T) {
	enc := New(testLogger())
	cfg := youtubeConfig("abcd-1234")

	signal, err := enc.Encode(cfg)
	require.NoError(t, err)
	require.NotNil(t, signal)

	text, err := protocol.Serialize(cfg)
	require.NoError(t, err)

	assert.Equal(t, modem.SampleRateLiveShellPro, signal.SampleRate)
	assert.Len(t, signal.Samples, modem.FrameLength(len(text))*modem.SamplesPerBit*modem.RepeatCount)
	assert.Greater(t, signal.Duration(), time.Duration(0))
	assert.Equal(t, modem.Encode([]byte(text)), signal.Samples)
}

// TestEncode_DurationProportionalToPayload tests that longer payloads play longer
func TestEncode_DurationProportionalToPayload(t *testing.T) {
	enc := New(testLogger())

	short, err := enc.Encode(youtubeConfig("k"))
	require.NoError(t, err)
	long, err := enc.Encode(youtubeConfig("kkkkkkkkkkk"))
	require.NoError(t, err)

	// ten extra payload bytes add ten framed bytes to each repeat
	extra := 10 * modem.BitsPerFramedByte * modem.SamplesPerBit * modem.RepeatCount
	assert.Equal(t, len(short.Samples)+extra, len(long.Samples))
	assert.Greater(t, long.Duration(), short.Duration())
}

// TestEncode_DeviceSampleRates tests the sample rate per device model
func TestEncode_DeviceSampleRates(t *testing.T) {
	enc := New(testLogger())

	tests := []struct {
		name     string
		model    modem.DeviceModel
		expected int
	}{
		{name: "LiveShell2", model: modem.LiveShell2, expected: 16000},
		{name: "LiveShellPro", model: modem.LiveShellPro, expected: 44100},
		{name: "LiveShellX", model: modem.LiveShellX, expected: 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := youtubeConfig("abcd-1234")
			cfg.Device = tt.model

			signal, err := enc.Encode(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, signal.SampleRate)

			wavData := signal.WAV()
			assert.Len(t, wavData, 44+2*len(signal.Samples))
		})
	}
}

// TestEncode_ConfigurationError tests that invalid input produces no signal
func TestEncode_ConfigurationError(t *testing.T) {
	enc := New(testLogger())
	cfg := youtubeConfig("abcd-1234")
	cfg.Connection = protocol.ConnectionWiFi

	signal, err := enc.Encode(cfg)
	assert.Nil(t, signal)
	assert.True(t, errors.Is(err, protocol.ErrConfiguration))
}

// TestEncode_Concurrent tests that one encoder can serve parallel callers
func TestEncode_Concurrent(t *testing.T) {
	enc := New(testLogger())
	expected, err := enc.Encode(youtubeConfig("abcd-1234"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Signal, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = enc.Encode(youtubeConfig("abcd-1234"))
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, expected.Samples, r.Samples)
	}
}

// TestSignal_Duration tests duration arithmetic
func TestSignal_Duration(t *testing.T) {
	tests := []struct {
		name     string
		signal   Signal
		expected time.Duration
	}{
		{name: "One second", signal: Signal{Samples: make([]float32, 16000), SampleRate: 16000}, expected: time.Second},
		{name: "Half second", signal: Signal{Samples: make([]float32, 24000), SampleRate: 48000}, expected: 500 * time.Millisecond},
		{name: "Zero rate", signal: Signal{Samples: make([]float32, 10)}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.signal.Duration())
		})
	}
}
