package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatten(chunks []Chunk) []string {
	var out []string
	for _, c := range chunks {
		out = append(out, c.Lines...)
	}
	return out
}

func TestSegment_EmptyInput(t *testing.T) {
	s := NewSegmenter(ByteLengthCounter{}, 500)

	assert.Empty(t, s.Segment(nil))
	assert.Empty(t, s.Segment([]string{}))
}

func TestSegment_ShortLinesFitInOneChunk(t *testing.T) {
	s := NewSegmenter(ByteLengthCounter{}, 500)
	lines := []string{"First line.", "Second line.", "Third line."}

	chunks := s.Segment(lines)

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, lines, chunks[0].Lines)
	assert.Equal(t, "First line. Second line. Third line.", chunks[0].Text())
}

func TestSegment_1200TokensMakesThreeChunks(t *testing.T) {
	s := NewSegmenter(ByteLengthCounter{}, 500)

	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, strings.Repeat(string(rune('a'+i)), 100))
	}

	chunks := s.Segment(lines)

	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.LessOrEqual(t, c.TokenCount, 500)
		assert.NotEmpty(t, c.Lines)
	}
	assert.Equal(t, 500, chunks[0].TokenCount)
	assert.Equal(t, 500, chunks[1].TokenCount)
	assert.Equal(t, 200, chunks[2].TokenCount)
	assert.Equal(t, lines, flatten(chunks))
}

func TestSegment_OversizedLineIsNeverSplit(t *testing.T) {
	s := NewSegmenter(ByteLengthCounter{}, 500)
	big := strings.Repeat("x", 700)
	lines := []string{"short", big, "tail"}

	chunks := s.Segment(lines)

	require.Len(t, chunks, 3)
	assert.Equal(t, []string{"short"}, chunks[0].Lines)
	assert.Equal(t, []string{big}, chunks[1].Lines)
	assert.Equal(t, 700, chunks[1].TokenCount)
	assert.Equal(t, []string{"tail"}, chunks[2].Lines)
}

func TestSegment_OversizedFirstLineDoesNotEmitEmptyChunk(t *testing.T) {
	s := NewSegmenter(ByteLengthCounter{}, 10)

	chunks := s.Segment([]string{strings.Repeat("y", 25)})

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestSegment_BudgetAndRoundTripProperties(t *testing.T) {
	s := NewSegmenter(ByteLengthCounter{}, 50)

	// 決定的な擬似乱数で長さの異なる行を生成する
	var lines []string
	seed := 7
	for i := 0; i < 200; i++ {
		seed = (seed*1103515245 + 12345) % 2147483648
		n := 1 + seed%80
		lines = append(lines, strings.Repeat("z", n))
	}

	chunks := s.Segment(lines)
	again := s.Segment(lines)

	assert.Equal(t, lines, flatten(chunks))
	assert.Equal(t, chunks, again)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		require.NotEmpty(t, c.Lines)
		if len(c.Lines) > 1 {
			assert.LessOrEqual(t, c.TokenCount, 50, "chunk %d", i)
		}
	}
}

func TestNewSegmenter_Defaults(t *testing.T) {
	s := NewSegmenter(nil, 0)

	assert.Equal(t, DefaultTokenBudget, s.budget)
	assert.IsType(t, ByteLengthCounter{}, s.counter)
}
