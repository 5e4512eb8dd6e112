package encoder

import (
	"time"

	"github.com/sirupsen/logrus"

	"liveshellwave/internal/modem"
	"liveshellwave/internal/protocol"
	"liveshellwave/internal/wav"
)

// Signal is a finished mono sample buffer ready for playback or export
type Signal struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playing time of the signal
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// WAV serializes the signal as a 16-bit PCM mono WAV file
func (s *Signal) WAV() []byte {
	return wav.Encode(s.Samples, s.SampleRate)
}

// Encoder runs the configuration through the transmit pipeline. It holds no
// mutable state and may be shared between goroutines.
type Encoder struct {
	logger *logrus.Logger
}

// New creates a new encoder
func New(logger *logrus.Logger) *Encoder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Encoder{logger: logger}
}

// Encode serializes, frames and modulates cfg. The only failure is a
// protocol.ConfigurationError, returned before any samples are produced.
func (e *Encoder) Encode(cfg protocol.Config) (*Signal, error) {
	text, err := protocol.Serialize(cfg)
	if err != nil {
		return nil, err
	}

	payload := []byte(text)
	bits := modem.Frame(payload)
	signal := &Signal{
		Samples:    modem.Modulate(bits),
		SampleRate: cfg.SampleRate(),
	}

	e.logger.WithFields(logrus.Fields{
		"device":        cfg.Device.String(),
		"connection":    cfg.Connection.String(),
		"ip_mode":       cfg.IPMode.String(),
		"payload_bytes": len(payload),
		"bits":          len(bits),
		"samples":       len(signal.Samples),
		"sample_rate":   signal.SampleRate,
		"duration":      signal.Duration().String(),
	}).Debug("Encoded configuration")

	return signal, nil
}
