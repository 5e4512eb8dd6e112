package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FilePrefix names the daily log files, e.g. liveshellwave_2025-04-08.log
const FilePrefix = "liveshellwave"

// Rotator is an io.Writer that appends to one log file per day and gzips the
// previous day's file when the date changes. The diagnostics logger must not
// write into the rotator itself.
type Rotator struct {
	logDir      string
	useUTC      bool
	logger      *logrus.Logger
	currentFile *os.File
	currentDate string
	now         func() time.Time
	mutex       sync.Mutex
	compressing sync.WaitGroup
}

// NewRotator creates the log directory and opens today's file
func NewRotator(logDir string, useUTC bool, logger *logrus.Logger) (*Rotator, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &Rotator{
		logDir: logDir,
		useUTC: useUTC,
		logger: logger,
		now:    time.Now,
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if err := r.rotate(r.today()); err != nil {
		return nil, fmt.Errorf("failed to initialize log file: %w", err)
	}

	return r, nil
}

func (r *Rotator) today() string {
	now := r.now()
	if r.useUTC {
		now = now.UTC()
	}
	return now.Format("2006-01-02")
}

func (r *Rotator) fileName(date string) string {
	return filepath.Join(r.logDir, fmt.Sprintf("%s_%s.log", FilePrefix, date))
}

// Write appends p to the current day's file, rotating first if the date changed
func (r *Rotator) Write(p []byte) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentFile == nil {
		return 0, fmt.Errorf("log rotator is closed")
	}

	if date := r.today(); date != r.currentDate {
		if err := r.rotate(date); err != nil {
			return 0, err
		}
	}

	return r.currentFile.Write(p)
}

// rotate switches to the file for date. Callers hold the mutex.
func (r *Rotator) rotate(date string) error {
	if r.currentFile != nil {
		oldDate := r.currentDate
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close old log file")
		}
		r.currentFile = nil

		r.compressing.Add(1)
		go func() {
			defer r.compressing.Done()
			if err := r.compress(oldDate); err != nil {
				r.logger.WithError(err).WithField("date", oldDate).Error("Failed to compress log file")
			}
		}()
	}

	path := r.fileName(date)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	r.currentFile = file
	r.currentDate = date

	r.logger.WithField("file", path).Debug("Opened log file")
	return nil
}

// compress gzips the file for date and removes the original
func (r *Rotator) compress(date string) error {
	logFile := r.fileName(date)
	gzipFile := logFile + ".gz"

	src, err := os.Open(logFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", logFile, err)
	}
	defer src.Close()

	dst, err := os.Create(gzipFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", gzipFile, err)
	}
	defer dst.Close()

	gzWriter := gzip.NewWriter(dst)
	gzWriter.Name = filepath.Base(logFile)
	gzWriter.ModTime = r.now()

	if _, err := io.Copy(gzWriter, src); err != nil {
		return fmt.Errorf("failed to compress %s: %w", logFile, err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", gzipFile, err)
	}

	return os.Remove(logFile)
}

// CurrentFile returns the path of the file being written
func (r *Rotator) CurrentFile() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentDate == "" {
		return ""
	}
	return r.fileName(r.currentDate)
}

// Files lists all log files in the directory, compressed ones included
func (r *Rotator) Files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.logDir, FilePrefix+"_*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}
	return files, nil
}

// Cleanup removes log files last modified more than maxDays ago
func (r *Rotator) Cleanup(maxDays int) (int, error) {
	if maxDays <= 0 {
		return 0, fmt.Errorf("maxDays must be positive")
	}

	files, err := r.Files()
	if err != nil {
		return 0, err
	}

	cutoff := r.now().AddDate(0, 0, -maxDays)
	current := r.CurrentFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("Failed to stat log file")
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(file); err != nil {
				r.logger.WithError(err).WithField("file", file).Error("Failed to remove old log file")
				continue
			}
			removed++
		}
	}

	return removed, nil
}

// Close closes the current file and waits for pending compression
func (r *Rotator) Close() error {
	r.mutex.Lock()
	var err error
	if r.currentFile != nil {
		err = r.currentFile.Close()
		r.currentFile = nil
	}
	r.mutex.Unlock()

	r.compressing.Wait()
	return err
}

var _ io.WriteCloser = (*Rotator)(nil)
