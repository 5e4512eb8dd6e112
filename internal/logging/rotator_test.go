package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// TestNewRotator tests directory and file creation
func TestNewRotator(t *testing.T) {
	tests := []struct {
		name   string
		subdir string
		useUTC bool
	}{
		{name: "Flat directory", subdir: "logs", useUTC: false},
		{name: "UTC", subdir: "logs_utc", useUTC: true},
		{name: "Nested directory", subdir: filepath.Join("nested", "test", "logs"), useUTC: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), tt.subdir)

			rotator, err := NewRotator(dir, tt.useUTC, quietLogger())
			require.NoError(t, err)
			defer rotator.Close()

			assert.DirExists(t, dir)
			current := rotator.CurrentFile()
			assert.FileExists(t, current)

			now := time.Now()
			if tt.useUTC {
				now = now.UTC()
			}
			// Tolerate a midnight crossing between open and check
			assert.Contains(t, []string{
				filepath.Join(dir, fmt.Sprintf("liveshellwave_%s.log", now.Format("2006-01-02"))),
				filepath.Join(dir, fmt.Sprintf("liveshellwave_%s.log", now.Add(-time.Minute).Format("2006-01-02"))),
			}, current)
		})
	}
}

// TestRotator_Write tests that writes land in the current file
func TestRotator_Write(t *testing.T) {
	rotator, err := NewRotator(t.TempDir(), false, quietLogger())
	require.NoError(t, err)
	defer rotator.Close()

	entry := "level=info msg=\"Encoded configuration\"\n"
	n, err := rotator.Write([]byte(entry))
	require.NoError(t, err)
	assert.Equal(t, len(entry), n)

	content, err := os.ReadFile(rotator.CurrentFile())
	require.NoError(t, err)
	assert.Equal(t, entry, string(content))
}

// TestRotator_DateChange tests rotation and compression when the day changes
func TestRotator_DateChange(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 4, 8, 23, 59, 0, 0, time.UTC)

	rotator, err := NewRotator(dir, true, quietLogger())
	require.NoError(t, err)
	rotator.now = func() time.Time { return day }

	// Reopen on the fixed clock
	_, err = rotator.Write([]byte("first day\n"))
	require.NoError(t, err)
	firstFile := rotator.CurrentFile()
	assert.Equal(t, filepath.Join(dir, "liveshellwave_2025-04-08.log"), firstFile)

	day = day.Add(2 * time.Minute)
	_, err = rotator.Write([]byte("second day\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "liveshellwave_2025-04-09.log"), rotator.CurrentFile())

	require.NoError(t, rotator.Close())

	assert.NoFileExists(t, firstFile)
	gzFile, err := os.Open(firstFile + ".gz")
	require.NoError(t, err)
	defer gzFile.Close()

	gzReader, err := gzip.NewReader(gzFile)
	require.NoError(t, err)
	defer gzReader.Close()

	decompressed, err := io.ReadAll(gzReader)
	require.NoError(t, err)
	assert.Equal(t, "first day\n", string(decompressed))

	content, err := os.ReadFile(filepath.Join(dir, "liveshellwave_2025-04-09.log"))
	require.NoError(t, err)
	assert.Equal(t, "second day\n", string(content))
}

// TestRotator_Close tests writes after close
func TestRotator_Close(t *testing.T) {
	rotator, err := NewRotator(t.TempDir(), false, quietLogger())
	require.NoError(t, err)

	_, err = rotator.Write([]byte("test data"))
	require.NoError(t, err)

	assert.NoError(t, rotator.Close())

	_, err = rotator.Write([]byte("more"))
	assert.Error(t, err)
}

// TestRotator_Files tests listing log files
func TestRotator_Files(t *testing.T) {
	dir := t.TempDir()
	rotator, err := NewRotator(dir, false, quietLogger())
	require.NoError(t, err)
	defer rotator.Close()

	testFiles := []string{
		"liveshellwave_2023-01-01.log",
		"liveshellwave_2023-01-02.log.gz",
		"unrelated.txt",
	}
	for _, name := range testFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test content"), 0644))
	}

	files, err := rotator.Files()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, file := range files {
		names[filepath.Base(file)] = true
	}
	assert.True(t, names["liveshellwave_2023-01-01.log"])
	assert.True(t, names["liveshellwave_2023-01-02.log.gz"])
	assert.False(t, names["unrelated.txt"])
	assert.True(t, names[filepath.Base(rotator.CurrentFile())])
}

// TestRotator_Cleanup tests removal of old files
func TestRotator_Cleanup(t *testing.T) {
	dir := t.TempDir()
	rotator, err := NewRotator(dir, false, quietLogger())
	require.NoError(t, err)
	defer rotator.Close()

	oldFile := filepath.Join(dir, "liveshellwave_2023-01-01.log.gz")
	require.NoError(t, os.WriteFile(oldFile, []byte("old content"), 0644))
	oldTime := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	recentFile := filepath.Join(dir, "liveshellwave_2023-12-31.log")
	require.NoError(t, os.WriteFile(recentFile, []byte("recent content"), 0644))

	removed, err := rotator.Cleanup(5)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, recentFile)
	assert.FileExists(t, rotator.CurrentFile())

	_, err = rotator.Cleanup(0)
	assert.ErrorContains(t, err, "maxDays must be positive")
}

// TestRotator_ConcurrentWrites tests that a shared logger can write from many goroutines
func TestRotator_ConcurrentWrites(t *testing.T) {
	rotator, err := NewRotator(t.TempDir(), false, quietLogger())
	require.NoError(t, err)
	defer rotator.Close()

	logger := logrus.New()
	logger.SetOutput(rotator)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.WithField("op", fmt.Sprintf("goroutine-%d-op-%d", id, j)).Info("write")
			}
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(rotator.CurrentFile())
	require.NoError(t, err)
	assert.Contains(t, string(content), "goroutine-0-op-0")
	assert.Contains(t, string(content), "goroutine-9-op-49")
}
