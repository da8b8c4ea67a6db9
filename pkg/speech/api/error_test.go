package api

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestErrRemote_TruncatesByCharacters(t *testing.T) {
	err := &ErrRemote{Endpoint: speechEndpoint, StatusCode: 500, Message: strings.Repeat("エ", 250)}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.Contains(t, msg, strings.Repeat("エ", maxMessageRunes)+"...")
	assert.NotContains(t, msg, strings.Repeat("エ", maxMessageRunes+1))
}
