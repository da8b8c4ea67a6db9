package speech

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
)

// FileRemover はファイルを削除します。
type FileRemover interface {
	Remove(path string) error
}

type osFileRemover struct{}

func (osFileRemover) Remove(path string) error { return os.Remove(path) }

// Cleanup は runStamp の実行で作られたチャンク音声とリストファイルを削除し、削除したパスを返します。
// 別の実行の残骸は対象外です。削除に失敗しても残りの削除は続け、失敗はまとめて返します。
func Cleanup(dir, runStamp string) ([]string, error) {
	return cleanupWith(osFileRemover{}, dir, runStamp)
}

func cleanupWith(files FileRemover, dir, runStamp string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ErrFileIO{Op: "readdir", Path: dir, WrappedErr: err}
	}

	listName := audio.ListFileName(runStamp)

	var (
		removed []string
		errs    []error
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		info, isChunk := audio.ParseChunkFileName(name)
		if !(isChunk && info.RunStamp == runStamp) && name != listName {
			continue
		}

		path := filepath.Join(dir, name)
		if err := files.Remove(path); err != nil {
			errs = append(errs, &ErrFileIO{Op: "remove", Path: path, WrappedErr: err})
			continue
		}
		removed = append(removed, path)
	}

	if len(errs) > 0 {
		return removed, fmt.Errorf("一時ファイルの削除に %d 件失敗しました: %w", len(errs), errors.Join(errs...))
	}
	return removed, nil
}
