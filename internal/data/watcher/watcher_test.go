package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, fw *FileWatcher, path string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-fw.Events():
			require.True(t, ok, "events channel closed")
			if ev.Path == path {
				return
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestFileWatcherReportsCaseFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("[1,2]\n"), 0644))

	fw, err := NewFileWatcher([]string{path})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(path, []byte("[1,2]\n[3,2,1]\n"), 0644))
	waitForEvent(t, fw, path)
}

func TestFileWatcherReportsNewFilesInDirectory(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher([]string{dir})
	require.NoError(t, err)
	defer fw.Close()

	path := filepath.Join(dir, "new.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("[5]\n"), 0644))
	waitForEvent(t, fw, path)
}

func TestFileWatcherMissingPath(t *testing.T) {
	_, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "missing.jsonl")})
	assert.Error(t, err)
}

func TestFileWatcherCloseClosesEvents(t *testing.T) {
	fw, err := NewFileWatcher([]string{t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, fw.Close())
	require.NoError(t, fw.Close())

	select {
	case _, ok := <-fw.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestRememberDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("[1]\n"), 0644))

	fw := &FileWatcher{versions: make(map[string]fileVersion)}

	assert.True(t, fw.remember(path), "first sighting")
	assert.False(t, fw.remember(path), "unchanged file")

	require.NoError(t, os.WriteFile(path, []byte("[1,2,3]\n"), 0644))
	assert.True(t, fw.remember(path), "rewritten file")
}
