package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"liveshellwave/internal/encoder"
)

// ContentType of exported files
const ContentType = "audio/wav"

// Exporter stores the WAV rendition of a signal under a name and returns
// where it ended up.
type Exporter interface {
	Export(ctx context.Context, signal *encoder.Signal, name string) (string, error)
}

// FileName returns the download name for a platform, e.g.
// liveshell_youtube_1700000000000.wav
func FileName(platform string, t time.Time) string {
	if platform == "" {
		platform = "custom"
	}
	return fmt.Sprintf("liveshell_%s_%d.wav", platform, t.UnixMilli())
}

// ObjectKey returns a unique bucket key for a platform
func ObjectKey(platform string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	if platform == "" {
		platform = "custom"
	}
	return fmt.Sprintf("%s/%s.wav", platform, id.String()), nil
}

// FileExporter writes WAV files into a directory
type FileExporter struct {
	dir    string
	logger *logrus.Logger
}

// NewFileExporter creates a new file exporter rooted at dir
func NewFileExporter(dir string, logger *logrus.Logger) *FileExporter {
	if dir == "" {
		dir = "."
	}
	return &FileExporter{dir: dir, logger: logger}
}

// Export writes the signal to dir/name. An absolute name is used as is.
func (e *FileExporter) Export(ctx context.Context, signal *encoder.Signal, name string) (string, error) {
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(e.dir, name)
	}

	if err := ctx.Err(); err != nil {
		return "", newExportError(path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", newExportError(path, fmt.Errorf("failed to create directory: %w", err))
	}

	data := signal.WAV()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", newExportError(path, fmt.Errorf("failed to write file: %w", err))
	}

	e.logger.WithFields(logrus.Fields{
		"file":     path,
		"bytes":    len(data),
		"duration": signal.Duration().String(),
	}).Info("Wrote WAV file")

	return path, nil
}

var _ Exporter = (*FileExporter)(nil)
