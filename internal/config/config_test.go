package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "CLASSIC", cfg.DefaultSet)
	assert.Equal(t, ":9090", cfg.GRPCAddr)
	assert.Equal(t, 10*time.Second, cfg.BuildTimeout)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_format: text
default_set: EXPANDED
batch_workers: 8
build_timeout: 2s
`), 0o644))
	t.Setenv("SHOWDOWN_GRPC_ADDR", "127.0.0.1:7000")
	t.Setenv("SHOWDOWN_BATCH_WORKERS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "EXPANDED", cfg.DefaultSet)
	assert.Equal(t, 2*time.Second, cfg.BuildTimeout)
	assert.Equal(t, "127.0.0.1:7000", cfg.GRPCAddr)
	assert.Equal(t, 2, cfg.BatchWorkers, "env wins over file")
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogFormat")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
