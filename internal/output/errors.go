package output

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is for each sink error type
var (
	ErrPlayback = errors.New("playback failed")
	ErrExport   = errors.New("export failed")
)

// PlaybackError wraps a failure of the audio output device
type PlaybackError struct {
	Op  string
	Err error
}

func newPlaybackError(op string, err error) *PlaybackError {
	return &PlaybackError{Op: op, Err: err}
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback failed: %s: %v", e.Op, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPlayback) true for any PlaybackError
func (e *PlaybackError) Is(target error) bool {
	return target == ErrPlayback
}

var _ error = (*PlaybackError)(nil)

// ExportError wraps a failure to store the WAV file
type ExportError struct {
	Target string
	Err    error
}

func newExportError(target string, err error) *ExportError {
	return &ExportError{Target: target, Err: err}
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Target, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExport) true for any ExportError
func (e *ExportError) Is(target error) bool {
	return target == ErrExport
}

var _ error = (*ExportError)(nil)
