package parser

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// TokenCounter はテキストのトークン数（コスト）を決定的に計算します。
type TokenCounter interface {
	CountTokens(text string) int
}

// ----------------------------------------------------------------------
// cl100k BPE カウンタ
// ----------------------------------------------------------------------

// BPE テーブルは実行時にダウンロードせず、埋め込みのオフラインローダーから読み込む。
var setOfflineLoader sync.Once

// CL100KCounter は OpenAI の cl100k_base エンコーディングで実際のトークン数を数えます。
type CL100KCounter struct {
	enc *tiktoken.Tiktoken
}

// NewCL100KCounter は cl100k_base のエンコーダを初期化します。
func NewCL100KCounter() (*CL100KCounter, error) {
	setOfflineLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding(CL100KEncoding)
	if err != nil {
		return nil, fmt.Errorf("エンコーディング %s の初期化に失敗しました: %w", CL100KEncoding, err)
	}
	return &CL100KCounter{enc: enc}, nil
}

func (c *CL100KCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// ----------------------------------------------------------------------
// バイト長カウンタ
// ----------------------------------------------------------------------

// ByteLengthCounter はバイト長をそのままトークン数とみなす近似実装です。
// cl100k より常に多めに見積もるため、予算を超えるリクエストは生じません。
type ByteLengthCounter struct{}

func (ByteLengthCounter) CountTokens(text string) int {
	return len(text)
}

// ----------------------------------------------------------------------
// ファクトリ
// ----------------------------------------------------------------------

const (
	TokenizerCL100K = "cl100k"
	TokenizerBytes  = "bytes"
)

// NewTokenCounter は名前からカウンタを選択します。
func NewTokenCounter(name string) (TokenCounter, error) {
	switch name {
	case "", TokenizerCL100K:
		return NewCL100KCounter()
	case TokenizerBytes:
		return ByteLengthCounter{}, nil
	default:
		return nil, fmt.Errorf("未対応のトークナイザです: %q (%s または %s を指定してください)", name, TokenizerCL100K, TokenizerBytes)
	}
}
