package audio

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestErrExternalTool_KeepsStderrTailByCharacters(t *testing.T) {
	stderr := strings.Repeat("前", 10) + strings.Repeat("後", maxStderrRunes)
	err := &ErrExternalTool{Tool: "ffmpeg", ExitCode: 1, Stderr: stderr}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, "..."+strings.Repeat("後", maxStderrRunes)))
	assert.NotContains(t, msg, "前")
}
