package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// ----------------------------------------------------------------------
// クライアント構造体とコンストラクタ
// ----------------------------------------------------------------------

// Client は音声合成APIへのリクエストを処理するクライアントです。
// 合成リクエストはリトライしません。最初の失敗がそのまま呼び出し元へ返ります。
type Client struct {
	speech   *openai.Client
	download *httpkit.Client // 音声URL応答のダウンロード用。こちらもリトライしない
	format   openai.SpeechResponseFormat
}

// ClientOption はクライアントの任意設定です。
type ClientOption func(*Client)

// WithResponseFormat は応答の音声フォーマット (flac, mp3, wav ...) を指定します。
func WithResponseFormat(format string) ClientOption {
	return func(c *Client) {
		if format != "" {
			c.format = openai.SpeechResponseFormat(format)
		}
	}
}

// NewClient は新しいClientインスタンスを初期化します。apiURL が空の場合は DefaultAPIURL を使います。
func NewClient(apiKey, apiURL string, opts ...ClientOption) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}

	c := &Client{
		speech:   openai.NewClientWithConfig(cfg),
		download: httpkit.New(DefaultDownloadTimeout, httpkit.WithMaxRetries(0)),
		format:   openai.SpeechResponseFormatFlac,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Format は応答の音声フォーマットを返します。ファイル拡張子にもそのまま使います。
func (c *Client) Format() string {
	return string(c.format)
}

// ----------------------------------------------------------------------
// API呼び出しロジック
// ----------------------------------------------------------------------

// Synthesize はテキストを1回のリクエストで音声に変換し、前方向のみ読めるストリームを返します。
// 呼び出し元はストリームを一度だけ読み切り、Close する必要があります。
func (c *Client) Synthesize(ctx context.Context, text, model, voice string) (io.ReadCloser, error) {
	// 1. 送信前の文字数チェック (ネットワーク呼び出しは行わない)
	if n := utf8.RuneCountInString(text); n > MaxInputChars {
		return nil, &ErrChunkTooLarge{Length: n, Limit: MaxInputChars}
	}

	// 2. リクエスト実行
	resp, err := c.speech.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: c.format,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	// 3. 音声URLを返す応答形式の場合は、もう一度ダウンロードする
	if isJSON(resp.Header().Get("Content-Type")) {
		defer resp.Close()
		return c.fetchDeferred(ctx, resp)
	}

	return resp, nil
}

// fetchDeferred は {"url": ...} 形式の応答から音声をダウンロードします。
func (c *Client) fetchDeferred(ctx context.Context, body io.Reader) (io.ReadCloser, error) {
	var deferred deferredAudio
	if err := json.NewDecoder(body).Decode(&deferred); err != nil {
		return nil, &ErrInvalidJSON{Details: speechEndpoint + " 応答JSONのデコード", WrappedErr: err}
	}
	if deferred.URL == "" {
		return nil, &ErrInvalidJSON{Details: speechEndpoint + " 応答に url がありません", WrappedErr: errors.New("missing url")}
	}

	slog.DebugContext(ctx, "音声URLからダウンロードします", "url", deferred.URL)

	data, err := c.download.FetchBytes(ctx, deferred.URL)
	if err != nil {
		return nil, &ErrTransport{Endpoint: deferred.URL, WrappedErr: err}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// ----------------------------------------------------------------------
// ヘルパー
// ----------------------------------------------------------------------

// classifyError は go-openai のエラーを ErrRemote / ErrTransport に振り分けます。
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = DefaultRemoteMessage
		}
		return &ErrRemote{Endpoint: speechEndpoint, StatusCode: apiErr.HTTPStatusCode, Message: msg, WrappedErr: err}
	}

	// エンベロープが無い・壊れている非2xx応答
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ErrRemote{Endpoint: speechEndpoint, StatusCode: reqErr.HTTPStatusCode, Message: DefaultRemoteMessage, WrappedErr: err}
	}

	return &ErrTransport{Endpoint: speechEndpoint, WrappedErr: err}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
