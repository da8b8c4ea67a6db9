package parser

import (
	"log/slog"
	"strings"
)

// Segmenter は、入力テキストの行リストを音声合成用のチャンクへ分割するインターフェースです。
type Segmenter interface {
	Segment(lines []string) []Chunk
}

// ----------------------------------------------------------------------
// データモデル (チャンク)
// ----------------------------------------------------------------------

// Chunk はトークン予算内にまとめられた連続する行の集まりです。
// Index は 0 始まりで、出力ファイルの並び順を決定します。
type Chunk struct {
	Index      int
	Lines      []string
	TokenCount int
}

// Text はチャンクの行を結合し、1回のリクエスト本文となる文字列を返します。
func (c Chunk) Text() string {
	return strings.Join(c.Lines, LineSeparator)
}

// ----------------------------------------------------------------------
// tokenSegmenter 構造体（Segmenter インターフェースの実装）
// ----------------------------------------------------------------------

// tokenSegmenter はトークン数の累計でチャンクを区切ります。
type tokenSegmenter struct {
	counter TokenCounter
	budget  int
}

// NewSegmenter は tokenSegmenter を生成します。budget が 0 以下の場合は DefaultTokenBudget を使います。
func NewSegmenter(counter TokenCounter, budget int) *tokenSegmenter {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	if counter == nil {
		counter = ByteLengthCounter{}
	}
	return &tokenSegmenter{
		counter: counter,
		budget:  budget,
	}
}

// Segment は行リストを順序を保ったままチャンクへ分割します。
// 予算の判定は「次の行を加えると超えるか」でのみ行い、行の途中では決して分割しません。
func (s *tokenSegmenter) Segment(lines []string) []Chunk {
	var (
		chunks  []Chunk
		current []string
		tokens  int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			Lines:      current,
			TokenCount: tokens,
		})
		current = nil
		tokens = 0
	}

	for _, line := range lines {
		lineTokens := s.counter.CountTokens(line)

		if tokens+lineTokens > s.budget {
			flush()
		}

		current = append(current, line)
		tokens += lineTokens

		if lineTokens > s.budget {
			slog.Warn("1行でトークン予算を超えています。分割せずに単独のチャンクとして扱います。",
				"line_tokens", lineTokens,
				"budget", s.budget)
		}
	}
	flush()

	return chunks
}
