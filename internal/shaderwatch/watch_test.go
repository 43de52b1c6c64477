package shaderwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsShader(t *testing.T) {
	assert.True(t, IsShader("shaders/model_lighting.fs"))
	assert.True(t, IsShader("hdr.vs"))
	assert.False(t, IsShader("hdr.fs.swp"))
	assert.False(t, IsShader("notes.txt"))
}

func TestDrainEmpty(t *testing.T) {
	w, err := New(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	assert.Empty(t, w.Drain())
}

func TestWriteIsReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hdr.fs")
	require.NoError(t, os.WriteFile(path, []byte("#version 410 core\n"), 0o644))

	w, err := New(zerolog.Nop(), dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("#version 410 core\nvoid main() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)

	for _, p := range got {
		assert.Equal(t, filepath.Clean(path), p)
	}
}

func TestDrainDeduplicates(t *testing.T) {
	w, err := New(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	w.changed <- "a.fs"
	w.changed <- "a.fs"
	w.changed <- "b.vs"
	assert.Equal(t, []string{"a.fs", "b.vs"}, w.Drain())
}

func TestMissingDirectory(t *testing.T) {
	_, err := New(zerolog.Nop(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
