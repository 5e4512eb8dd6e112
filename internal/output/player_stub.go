//go:build !cgo

package output

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var errNoAudio = errors.New("audio output support is not available in builds without cgo")

// PortAudioPlayer is a stub that fails every playback
type PortAudioPlayer struct {
	logger *logrus.Logger
}

// NewPlayer creates a stub player that returns an error
func NewPlayer(logger *logrus.Logger) (*PortAudioPlayer, error) {
	return nil, newPlaybackError("initialize", errNoAudio)
}

// Play returns an error for stub implementation
func (p *PortAudioPlayer) Play(ctx context.Context, samples []float32, sampleRate int) error {
	return newPlaybackError("initialize", errNoAudio)
}

var _ Player = (*PortAudioPlayer)(nil)
