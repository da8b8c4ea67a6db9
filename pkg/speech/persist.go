package speech

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shouni/go-text-to-speech/pkg/speech/api"
	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
)

// 音声ストリーム受信中の通信エラーに付けるエンドポイント名
const streamEndpoint = "音声ストリーム"

// Persist は音声ストリームを dir/tmp_<runStamp>_chunk<6桁>.<ext> へ新規作成で書き出します。
// 同名ファイルが既に存在する場合は上書きせずにエラーを返します。
// 書き込み途中で失敗したファイルは調査用にそのまま残します。
func Persist(r io.Reader, dir, runStamp string, index int, ext string) (string, error) {
	if index < 0 || index > audio.MaxChunkIndex {
		return "", &ErrFileIO{
			Op:         "name",
			Path:       dir,
			WrappedErr: fmt.Errorf("チャンク番号 %d は 0〜%d の範囲外です", index, audio.MaxChunkIndex),
		}
	}

	path := filepath.Join(dir, audio.ChunkFileName(runStamp, index, ext))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, chunkFilePerm)
	if err != nil {
		return "", &ErrFileIO{Op: "create", Path: path, WrappedErr: err}
	}

	src := &streamReader{r: r}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		// 受信側の失敗は通信エラー、書き込み側の失敗はファイルI/Oエラーとして返す
		if src.err != nil {
			return "", &api.ErrTransport{Endpoint: streamEndpoint, WrappedErr: src.err}
		}
		return "", &ErrFileIO{Op: "write", Path: path, WrappedErr: err}
	}

	if err := f.Close(); err != nil {
		return "", &ErrFileIO{Op: "close", Path: path, WrappedErr: err}
	}
	return path, nil
}

// streamReader は音声ストリームの読み込みエラーを記録します。
type streamReader struct {
	r   io.Reader
	err error
}

func (s *streamReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}
