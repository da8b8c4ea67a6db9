package api

import "time"

// ----------------------------------------------------------------------
// 定数
// ----------------------------------------------------------------------

const (
	DefaultAPIURL = "https://api.openai.com/v1"
	// 1リクエストに載せられる最大文字数
	MaxInputChars = 4000
	// エラーエンベロープから message が得られない場合の既定メッセージ
	DefaultRemoteMessage = "音声合成APIがエラーを返しました"
	// 音声URLを返す応答形式でのダウンロードタイムアウト
	DefaultDownloadTimeout = 60 * time.Second

	speechEndpoint = "/audio/speech"
)

// ----------------------------------------------------------------------
// データモデル (API応答)
// ----------------------------------------------------------------------

// deferredAudio は音声本体の代わりにダウンロードURLを返す応答形式です。
type deferredAudio struct {
	URL string `json:"url"`
}
