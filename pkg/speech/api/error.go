package api

import (
	"fmt"
)

// ErrTransport は API 呼び出しにおける通信レベルの失敗を示すカスタムエラー型です。
type ErrTransport struct {
	Endpoint   string
	WrappedErr error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("API通信エラー (%s): %v", e.Endpoint, e.WrappedErr)
}

func (e *ErrTransport) Unwrap() error { return e.WrappedErr }

// ErrRemote は API が 4xx や 5xx などの異常なステータスコードを返したことを示します。
// Message はエラーエンベロープ {error: {message}} の内容で、取得できない場合は DefaultRemoteMessage です。
type ErrRemote struct {
	Endpoint   string
	StatusCode int
	Message    string
	WrappedErr error
}

func (e *ErrRemote) Error() string {
	// メッセージが長すぎる場合は切り詰める
	msg := e.Message
	if runes := []rune(msg); len(runes) > maxMessageRunes {
		msg = string(runes[:maxMessageRunes]) + "..."
	}
	return fmt.Sprintf("API応答エラー (%s)。ステータスコード %d: %s", e.Endpoint, e.StatusCode, msg)
}

func (e *ErrRemote) Unwrap() error { return e.WrappedErr }

// エラーメッセージに残す最大文字数
const maxMessageRunes = 200

// ErrInvalidJSON は API 応答が期待される JSON 形式でなかったことを示します。
type ErrInvalidJSON struct {
	Details    string
	WrappedErr error
}

func (e *ErrInvalidJSON) Error() string {
	return fmt.Sprintf("不正なJSONデータ: %s (詳細: %v)", e.Details, e.WrappedErr)
}

func (e *ErrInvalidJSON) Unwrap() error { return e.WrappedErr }

// ErrChunkTooLarge はリクエスト本文が文字数上限を超えたため、送信前に拒否したことを示します。
type ErrChunkTooLarge struct {
	Length int
	Limit  int
}

func (e *ErrChunkTooLarge) Error() string {
	return fmt.Sprintf("チャンクが %d 文字あり、上限の %d 文字を超えています。短くしてください", e.Length, e.Limit)
}
