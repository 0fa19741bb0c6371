package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferSeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragment.glsl")
	b, err := NewBuffer(path, "void main() {}\n")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", b.Value())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", string(data))
}

func TestNewBufferExistingFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragment.glsl")
	require.NoError(t, os.WriteFile(path, []byte("// edited\n"), 0o644))

	b, err := NewBuffer(path, "void main() {}\n")
	require.NoError(t, err)
	assert.Equal(t, "// edited\n", b.Value())
}

func TestSetValueWritesThroughAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vertex.glsl")
	b, err := NewBuffer(path, "a")
	require.NoError(t, err)

	changes := 0
	b.OnChange(func() { changes++ })

	require.NoError(t, b.SetValue("b"))
	assert.Equal(t, "b", b.Value())
	assert.Equal(t, 1, changes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestReloadNotifiesOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vertex.glsl")
	b, err := NewBuffer(path, "a")
	require.NoError(t, err)

	changes := 0
	b.OnChange(func() { changes++ })

	// File content matches the buffer: the echo of our own write-through
	// must not count as an edit.
	require.NoError(t, b.Reload())
	assert.Equal(t, 0, changes)

	require.NoError(t, os.WriteFile(path, []byte("external"), 0o644))
	require.NoError(t, b.Reload())
	assert.Equal(t, 1, changes)
	assert.Equal(t, "external", b.Value())
}
