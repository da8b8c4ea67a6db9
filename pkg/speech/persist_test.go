package speech

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-text-to-speech/pkg/speech/api"
	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
)

type brokenReader struct {
	sent bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset")
}

func TestPersist_WritesChunkFile(t *testing.T) {
	dir := t.TempDir()

	path, err := Persist(strings.NewReader("payload"), dir, "1700000000", 42, "flac")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tmp_1700000000_chunk000042.flac"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestPersist_ExclusiveCreate(t *testing.T) {
	dir := t.TempDir()
	_, err := Persist(strings.NewReader("first"), dir, "1", 0, "mp3")
	require.NoError(t, err)

	_, err = Persist(strings.NewReader("second"), dir, "1", 0, "mp3")

	var fileErr *ErrFileIO
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "create", fileErr.Op)
	assert.ErrorIs(t, err, os.ErrExist)

	data, _ := os.ReadFile(filepath.Join(dir, audio.ChunkFileName("1", 0, "mp3")))
	assert.Equal(t, "first", string(data))
}

func TestPersist_StreamReadErrorIsTransport(t *testing.T) {
	dir := t.TempDir()

	_, err := Persist(&brokenReader{}, dir, "1", 3, "flac")

	// 受信側の失敗は通信エラーであり、ファイルI/Oエラーではない
	var transport *api.ErrTransport
	require.True(t, errors.As(err, &transport))
	assert.EqualError(t, transport.WrappedErr, "connection reset")
	var fileErr *ErrFileIO
	assert.False(t, errors.As(err, &fileErr))

	data, readErr := os.ReadFile(filepath.Join(dir, audio.ChunkFileName("1", 3, "flac")))
	require.NoError(t, readErr)
	assert.Equal(t, "partial", string(data))
}

func TestPersist_IndexOutOfRange(t *testing.T) {
	_, err := Persist(strings.NewReader("x"), t.TempDir(), "1", audio.MaxChunkIndex+1, "flac")

	var fileErr *ErrFileIO
	assert.True(t, errors.As(err, &fileErr))
}
