package rules

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchLoaderInvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sets"), 0o755))
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("default.yaml", "version: \"1\"\n")
	write(filepath.Join("sets", "X.yaml"), "set: X\n")

	l := NewLoader(os.DirFS(dir))
	cfg, err := l.LoadMerged("X", "")
	require.NoError(t, err)
	require.Equal(t, "1", cfg.Version)

	var errs atomic.Int32
	w, err := WatchLoader(l, dir, func(error) { errs.Add(1) })
	require.NoError(t, err)
	defer w.Stop()

	write("default.yaml", "version: \"2\"\n")
	assert.Eventually(t, func() bool {
		cfg, err := l.LoadMerged("X", "")
		return err == nil && cfg.Version == "2"
	}, 5*time.Second, 20*time.Millisecond)
	assert.Zero(t, errs.Load())
}
