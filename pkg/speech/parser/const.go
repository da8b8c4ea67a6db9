package parser

const (
	// 1チャンクあたりのトークン予算。1行でこれを超える場合は分割せず単独チャンクにする。
	DefaultTokenBudget = 500
	// tiktoken のエンコーディング名 (OpenAI cl100k BPE)
	CL100KEncoding = "cl100k_base"
	// チャンク行を1リクエストの本文へ結合する際の区切り文字
	LineSeparator = " "
	// 1行の読み込み上限 (bufio.Scanner の既定 64KiB では長文行が読めないため拡張)
	maxLineBytes = 4 * 1024 * 1024
)
