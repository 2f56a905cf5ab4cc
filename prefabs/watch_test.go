package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWatcherReportsSpecAndScriptChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zaptest.NewLogger(t), dir)
	require.NoError(t, err)
	defer w.Close()

	// Ignored extension first; only the two interesting files come through.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	spec := filepath.Join(dir, "crate.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("name: crate\n"), 0o644))
	script := filepath.Join(dir, "impulse.tengo")
	require.NoError(t, os.WriteFile(script, []byte("angular = 1\n"), 0o644))

	seen := map[string]bool{}
	timeout := time.After(5 * time.Second)
	for !seen[spec] || !seen[script] {
		select {
		case path := <-w.Events:
			assert.NotEqual(t, ".txt", filepath.Ext(path))
			seen[path] = true
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", seen)
		}
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(nil, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok, "events channel closed")
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(nil, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSpecFileFilters(t *testing.T) {
	assert.True(t, isSpecFile("a/b.YAML"))
	assert.True(t, isSpecFile("b.yml"))
	assert.False(t, isSpecFile("b.tengo"))
	assert.True(t, isScriptFile("b.tengo"))
	assert.False(t, isScriptFile("b.go"))
}
