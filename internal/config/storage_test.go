package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewStorageConfigFromEnv tests defaults and required variables
func TestNewStorageConfigFromEnv(t *testing.T) {
	t.Setenv("LIVESHELLWAVE_S3_ENDPOINT", "localhost:9000")
	t.Setenv("LIVESHELLWAVE_S3_ACCESS_KEY", "minio")
	t.Setenv("LIVESHELLWAVE_S3_SECRET_KEY", "minio123")

	cfg, err := NewStorageConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Endpoint)
	assert.Equal(t, "liveshellwave", cfg.Bucket)
	assert.True(t, cfg.UseTLS)
	assert.Empty(t, cfg.Region)
}

// TestNewStorageConfigFromEnv_Missing tests that a missing endpoint fails
func TestNewStorageConfigFromEnv_Missing(t *testing.T) {
	t.Setenv("LIVESHELLWAVE_S3_ENDPOINT", "")
	t.Setenv("LIVESHELLWAVE_S3_ACCESS_KEY", "minio")
	t.Setenv("LIVESHELLWAVE_S3_SECRET_KEY", "minio123")
	os.Unsetenv("LIVESHELLWAVE_S3_ENDPOINT")

	_, err := NewStorageConfigFromEnv()
	assert.Error(t, err)
}

// TestLoadEnv tests .env loading
func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LIVESHELLWAVE_S3_BUCKET=from-dotenv\n"), 0644))
	t.Setenv("LIVESHELLWAVE_S3_BUCKET", "")
	os.Unsetenv("LIVESHELLWAVE_S3_BUCKET")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("LIVESHELLWAVE_S3_BUCKET"))
}
