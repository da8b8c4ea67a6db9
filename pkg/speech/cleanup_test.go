package speech

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

func TestCleanup_RemovesOnlyCurrentRunArtifacts(t *testing.T) {
	dir := t.TempDir()
	current := []string{
		audio.ChunkFileName("200", 0, "flac"),
		audio.ChunkFileName("200", 1, "flac"),
		audio.ChunkFileName("200", 2, "flac"),
		audio.ListFileName("200"),
	}
	kept := []string{
		"book.flac",
		audio.ChunkFileName("100", 0, "flac"),
		audio.ListFileName("100"),
		"notes.txt",
	}
	writeFiles(t, dir, current...)
	writeFiles(t, dir, kept...)

	removed, err := Cleanup(dir, "200")
	require.NoError(t, err)

	var want []string
	for _, name := range current {
		want = append(want, filepath.Join(dir, name))
	}
	assert.ElementsMatch(t, want, removed)

	for _, name := range current {
		assert.NoFileExists(t, filepath.Join(dir, name))
	}
	for _, name := range kept {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestCleanup_MissingDirectory(t *testing.T) {
	_, err := Cleanup(filepath.Join(t.TempDir(), "missing"), "1")

	var fileErr *ErrFileIO
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "readdir", fileErr.Op)
}
