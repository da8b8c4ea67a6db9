package audio

import (
	"fmt"
	"regexp"
	"strconv"
)

// tmp_<runStamp>_chunk<6桁>.<ext>
var reChunkFile = regexp.MustCompile(`^` + TempFilePrefix + `(.+)_chunk(\d{6})\.([A-Za-z0-9]+)$`)

// ChunkFileName はチャンク音声のファイル名を返します。
// 番号をゼロ埋め6桁にしているため、ファイル名の辞書順がそのままチャンク順になります。
func ChunkFileName(runStamp string, index int, ext string) string {
	return fmt.Sprintf("%s%s_chunk%06d.%s", TempFilePrefix, runStamp, index, ext)
}

// ListFileName は concat demuxer 用のリストファイル名を返します。
func ListFileName(runStamp string) string {
	return fmt.Sprintf("%s%s_concat.txt", TempFilePrefix, runStamp)
}

// ChunkFileInfo はファイル名から読み取ったチャンク情報です。
type ChunkFileInfo struct {
	RunStamp string
	Index    int
	Ext      string
}

// ParseChunkFileName はファイル名がチャンク音声の命名規則に一致するか判定します。
func ParseChunkFileName(name string) (ChunkFileInfo, bool) {
	m := reChunkFile.FindStringSubmatch(name)
	if m == nil {
		return ChunkFileInfo{}, false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return ChunkFileInfo{}, false
	}
	return ChunkFileInfo{RunStamp: m[1], Index: index, Ext: m[3]}, true
}
