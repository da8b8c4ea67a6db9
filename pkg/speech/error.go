package speech

import (
	"fmt"
)

// ----------------------------------------------------------------------
// 入力エラー
// ----------------------------------------------------------------------

// ErrInvalidInput は入力ファイルや認証情報など、実行前に判明する問題を示します。
type ErrInvalidInput struct {
	Details    string
	WrappedErr error
}

func (e *ErrInvalidInput) Error() string {
	if e.WrappedErr == nil {
		return fmt.Sprintf("入力エラー: %s", e.Details)
	}
	return fmt.Sprintf("入力エラー: %s: %v", e.Details, e.WrappedErr)
}

func (e *ErrInvalidInput) Unwrap() error { return e.WrappedErr }

// ----------------------------------------------------------------------
// ファイル操作エラー (persist.go, cleanup.go で利用)
// ----------------------------------------------------------------------

// ErrFileIO はファイルの作成・書き込み・削除の失敗を示します。
type ErrFileIO struct {
	Op         string // 例: "create"
	Path       string
	WrappedErr error
}

func (e *ErrFileIO) Error() string {
	return fmt.Sprintf("ファイル操作エラー (%s %s): %v", e.Op, e.Path, e.WrappedErr)
}

func (e *ErrFileIO) Unwrap() error { return e.WrappedErr }

// ----------------------------------------------------------------------
// パイプラインエラー (pipeline.go で利用)
// ----------------------------------------------------------------------

// ErrChunkFailed は特定のチャンクの合成・保存に失敗して実行が中断されたことを示します。
// 原因のエラーは Unwrap でそのまま取り出せます。
type ErrChunkFailed struct {
	Index      int // 0 始まり
	Total      int
	Preview    string
	WrappedErr error
}

func (e *ErrChunkFailed) Error() string {
	return fmt.Sprintf("チャンク %d/%d の処理に失敗しました (%q): %v", e.Index+1, e.Total, e.Preview, e.WrappedErr)
}

func (e *ErrChunkFailed) Unwrap() error { return e.WrappedErr }
