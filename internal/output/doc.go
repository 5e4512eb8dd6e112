// Package output delivers an encoded signal to the outside world: the local
// sound card, a WAV file on disk, or an object storage bucket.
//
// Sink failures are reported as PlaybackError or ExportError so callers can
// tell them apart from configuration problems.
package output
