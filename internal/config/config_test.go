package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STUDYHUB_DB", "STUDYHUB_CATALOG", "STUDYHUB_LOG_LEVEL", "STUDYHUB_LOG_FORMAT",
		"STUDYHUB_LOG_FILE", "STUDYHUB_MAX_UPLOAD_MB", "STUDYHUB_UPLOAD_TICK_MS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 200*time.Millisecond, cfg.UploadTick)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDYHUB_DB", "/tmp/x.db")
	t.Setenv("STUDYHUB_LOG_LEVEL", "DEBUG")
	t.Setenv("STUDYHUB_MAX_UPLOAD_MB", "2")
	t.Setenv("STUDYHUB_UPLOAD_TICK_MS", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 200*time.Millisecond, cfg.UploadTick)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STUDYHUB_CATALOG=catalog.yaml\n"), 0o644))
	// godotenv does not override variables already present, so unset it.
	require.NoError(t, os.Unsetenv("STUDYHUB_CATALOG"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDYHUB_LOG_FORMAT", "xml")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogFormat")
}
