package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadLines は入力から空白のみの行を除いた行を順番どおりに読み込みます。
// 行末の CR は取り除きますが、それ以外の空白はそのまま残します。
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("テキストの読み込みに失敗しました: %w", err)
	}
	return lines, nil
}
