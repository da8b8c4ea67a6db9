package audio

import (
	"errors"
	"fmt"
)

// ErrToolNotFound は外部の結合ツールが PATH 上に見つからないことを示します。
var ErrToolNotFound = errors.New("ffmpeg が PATH 上に見つかりません")

// ErrNoChunksFound は出力ディレクトリに結合対象のチャンク音声が1つもないことを示します。
type ErrNoChunksFound struct {
	Dir      string
	RunStamp string
}

func (e *ErrNoChunksFound) Error() string {
	return fmt.Sprintf("結合対象のチャンク音声が見つかりません (ディレクトリ: %s, 実行ID: %s)", e.Dir, e.RunStamp)
}

// エラーメッセージに残す標準エラー出力の最大文字数 (末尾側)
const maxStderrRunes = 300

// ErrExternalTool は外部ツールが 0 以外の終了コードで終了したことを示します。
// 起動自体に失敗した場合 ExitCode は -1 です。
type ErrExternalTool struct {
	Tool       string
	ExitCode   int
	Stderr     string
	WrappedErr error
}

func (e *ErrExternalTool) Error() string {
	// 標準エラー出力が長すぎる場合は末尾だけ残す
	stderr := e.Stderr
	if runes := []rune(stderr); len(runes) > maxStderrRunes {
		stderr = "..." + string(runes[len(runes)-maxStderrRunes:])
	}
	if stderr == "" {
		return fmt.Sprintf("%s が終了コード %d で失敗しました: %v", e.Tool, e.ExitCode, e.WrappedErr)
	}
	return fmt.Sprintf("%s が終了コード %d で失敗しました: %s", e.Tool, e.ExitCode, stderr)
}

func (e *ErrExternalTool) Unwrap() error { return e.WrappedErr }

// ErrInvalidWAVHeader はWAVデータが短すぎる、またはヘッダーの記載とデータ長が一致しないなど、
// ヘッダーに問題があることを示します。
type ErrInvalidWAVHeader struct {
	Index   int // エラーが発生したWAVセグメントのインデックス
	Details string
}

func (e *ErrInvalidWAVHeader) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("WAVデータ #%d のヘッダーが無効です: %s", e.Index, e.Details)
	}
	return fmt.Sprintf("WAVデータ結合時のエラー: %s", e.Details)
}
