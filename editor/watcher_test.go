package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWatchedFileWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "fragment.glsl")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	w, err := NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()

	// An unrelated file in the same directory must be filtered out.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("b"), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case path := <-w.Events():
			require.Equal(t, watched, path)
			return
		case <-deadline:
			t.Fatal("no event for watched file within 2s")
		}
	}
}
