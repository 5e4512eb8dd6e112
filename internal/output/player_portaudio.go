//go:build cgo

package output

import (
	"context"
	"errors"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

// PortAudioPlayer plays through the default output device. The device is
// opened at the signal's sample rate for the duration of one Play call and
// released before it returns.
type PortAudioPlayer struct {
	logger          *logrus.Logger
	framesPerBuffer int
}

// NewPlayer creates a new sound card player
func NewPlayer(logger *logrus.Logger) (*PortAudioPlayer, error) {
	return &PortAudioPlayer{
		logger:          logger,
		framesPerBuffer: DefaultFramesPerBuffer,
	}, nil
}

// Play writes samples to the default output stream, blocking until the last
// buffer is queued or ctx is cancelled.
func (p *PortAudioPlayer) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return newPlaybackError("open stream", errors.New("sample rate must be positive"))
	}

	if err := portaudio.Initialize(); err != nil {
		return newPlaybackError("initialize", err)
	}
	defer func() {
		if err := portaudio.Terminate(); err != nil {
			p.logger.WithError(err).Warn("Failed to terminate audio subsystem")
		}
	}()

	buffer := make([]float32, p.framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(buffer), &buffer)
	if err != nil {
		return newPlaybackError("open stream", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return newPlaybackError("start stream", err)
	}
	defer func() {
		if err := stream.Stop(); err != nil {
			p.logger.WithError(err).Debug("Failed to stop output stream")
		}
	}()

	p.logger.WithFields(logrus.Fields{
		"samples":     len(samples),
		"sample_rate": sampleRate,
	}).Info("Playing signal")

	for offset := 0; offset < len(samples); offset += len(buffer) {
		select {
		case <-ctx.Done():
			return newPlaybackError("write stream", ctx.Err())
		default:
		}

		n := copy(buffer, samples[offset:])
		// Pad the last chunk with silence
		for i := n; i < len(buffer); i++ {
			buffer[i] = 0
		}

		if err := stream.Write(); err != nil {
			return newPlaybackError("write stream", err)
		}
	}

	p.logger.Info("Playback finished")
	return nil
}

var _ Player = (*PortAudioPlayer)(nil)
