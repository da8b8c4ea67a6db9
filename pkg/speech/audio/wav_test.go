package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeWav は 16bit モノラル 24kHz の最小WAVを組み立てます。list が true の場合 LIST チャンクを挟みます。
func makeWav(samples []byte, list bool, sampleRate uint32) []byte {
	fmtBody := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtBody[0:], 1) // PCM
	binary.LittleEndian.PutUint16(fmtBody[2:], 1) // mono
	binary.LittleEndian.PutUint32(fmtBody[4:], sampleRate)
	binary.LittleEndian.PutUint32(fmtBody[8:], sampleRate*2)
	binary.LittleEndian.PutUint16(fmtBody[12:], 2)
	binary.LittleEndian.PutUint16(fmtBody[14:], 16)

	var body []byte
	body = append(body, "WAVE"...)
	body = append(body, "fmt "...)
	body = binary.LittleEndian.AppendUint32(body, 16)
	body = append(body, fmtBody...)
	if list {
		body = append(body, "LIST"...)
		body = binary.LittleEndian.AppendUint32(body, 3)
		body = append(body, 'a', 'b', 'c', 0) // 奇数長 + パディング
	}
	body = append(body, "data"...)
	body = binary.LittleEndian.AppendUint32(body, uint32(len(samples)))
	body = append(body, samples...)

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func TestCombineWavData(t *testing.T) {
	a := makeWav([]byte{1, 2, 3, 4}, false, 24000)
	b := makeWav([]byte{5, 6}, true, 24000)

	combined, err := CombineWavData([][]byte{a, b})
	require.NoError(t, err)

	assert.Equal(t, "RIFF", string(combined[0:4]))
	assert.Equal(t, uint32(len(combined)-8), binary.LittleEndian.Uint32(combined[4:8]))
	assert.Equal(t, "WAVE", string(combined[8:12]))

	_, data, err := extractAudioData(combined, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, data)
}

// makeOddFmtWav は奇数長 (17バイト) の fmt チャンクとパディングを持つWAVを作成します。
func makeOddFmtWav(samples []byte) []byte {
	fmtBody := make([]byte, 17)
	binary.LittleEndian.PutUint16(fmtBody[0:], 1)
	binary.LittleEndian.PutUint16(fmtBody[2:], 1)
	binary.LittleEndian.PutUint32(fmtBody[4:], 24000)

	var body []byte
	body = append(body, "WAVE"...)
	body = append(body, "fmt "...)
	body = binary.LittleEndian.AppendUint32(body, uint32(len(fmtBody)))
	body = append(body, fmtBody...)
	body = append(body, 0)
	body = append(body, "data"...)
	body = binary.LittleEndian.AppendUint32(body, uint32(len(samples)))
	body = append(body, samples...)

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func TestCombineWavData_OddSizedChunksArePadded(t *testing.T) {
	combined, err := CombineWavData([][]byte{
		makeOddFmtWav([]byte{1, 2, 3}),
		makeOddFmtWav([]byte{4, 5, 6, 7}),
	})
	require.NoError(t, err)

	// RIFF(12) + fmt ヘッダー(8) + 本体(17) + パディング(1) の直後に data が来る
	dataOffset := WavRiffHeaderSize + ChunkHeaderSize + 17 + 1
	require.Greater(t, len(combined), dataOffset+ChunkHeaderSize)
	assert.Equal(t, "data", string(combined[dataOffset:dataOffset+4]))
	assert.Zero(t, dataOffset%2)

	// data は7バイト (奇数) なので末尾にもパディングが付く
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(combined[dataOffset+4:dataOffset+8]))
	assert.Len(t, combined, dataOffset+ChunkHeaderSize+7+1)
	assert.Equal(t, uint32(len(combined)-8), binary.LittleEndian.Uint32(combined[4:8]))

	_, data, err := extractAudioData(combined, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, data)
}

func TestCombineWavData_StreamingSizeField(t *testing.T) {
	a := makeWav([]byte{1, 2}, false, 24000)
	// data サイズ欄を未確定値にする
	binary.LittleEndian.PutUint32(a[40:44], unknownChunkSize)

	combined, err := CombineWavData([][]byte{a, makeWav([]byte{3}, false, 24000)})
	require.NoError(t, err)

	_, data, err := extractAudioData(combined, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestCombineWavData_Errors(t *testing.T) {
	_, err := CombineWavData(nil)
	assert.Error(t, err)

	var header *ErrInvalidWAVHeader
	_, err = CombineWavData([][]byte{[]byte("RIFF")})
	require.True(t, errors.As(err, &header))

	_, err = CombineWavData([][]byte{makeWav([]byte{1}, false, 24000), makeWav([]byte{2}, false, 44100)})
	require.True(t, errors.As(err, &header))
	assert.Equal(t, 1, header.Index)
}

func TestWAVConcatenator_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	touchWav := func(name string, samples []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), makeWav(samples, false, 24000), 0644))
	}
	touchWav(ChunkFileName("9", 1, "wav"), []byte{3, 4})
	touchWav(ChunkFileName("9", 0, "wav"), []byte{1, 2})

	out, err := NewAssembler(NewWAVConcatenator()).Assemble(context.Background(), dir, "9", "book", "wav")
	require.NoError(t, err)

	combined, err := os.ReadFile(out)
	require.NoError(t, err)
	_, data, err := extractAudioData(combined, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
}
