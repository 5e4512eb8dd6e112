package output

import (
	"context"
)

// Player plays a mono sample buffer and returns when playback has finished
type Player interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// Playback buffer constants
const (
	DefaultFramesPerBuffer = 1024
)
