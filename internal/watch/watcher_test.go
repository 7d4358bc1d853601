package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, file string) <-chan struct{} {
	t.Helper()
	changes := make(chan struct{}, 10)
	w := New([]string{file}, 50*time.Millisecond, func() { changes <- struct{}{} }, nil)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return changes
}

func TestFileWatcherDebouncesWrites(t *testing.T) {
	file := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	changes := startWatcher(t, file)

	for i := range 3 {
		require.NoError(t, os.WriteFile(file, fmt.Appendf(nil, `{"n":%d}`, i), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcherDetectsAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	changes := startWatcher(t, file)

	tmp := filepath.Join(dir, "resume.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"replaced":true}`), 0o644))
	require.NoError(t, os.Rename(tmp, file))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("replace not reported")
	}
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	changes := startWatcher(t, file)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-changes:
		t.Fatal("unrelated file reported")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcherLifecycle(t *testing.T) {
	file := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	w := New([]string{file, ""}, 0, func() {}, nil)
	assert.Equal(t, []string{file}, w.Files())
	assert.Equal(t, defaultDebounce, w.debounce)

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
