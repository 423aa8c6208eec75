package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/bastiangx/prefixserve/internal/logger"
	"github.com/bastiangx/prefixserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(input string, k int) (*InputHandler, *bytes.Buffer) {
	m := suggest.NewPrefixMatches(suggest.WithLogger(
		logger.NewWithConfig(io.Discard, "test", log.ErrorLevel, false, false, log.TextFormatter)))
	m.Load("one oneapple onedrive")

	var out bytes.Buffer
	h := NewInputHandler(m, k, "exit", strings.NewReader(input), &out)
	h.logger = logger.NewWithConfig(io.Discard, "cli", log.ErrorLevel, false, false, log.TextFormatter)
	return h, &out
}

func TestStartPrintsSuggestionsUntilExit(t *testing.T) {
	h, out := newHandler("one\nexit\none\n", 0)
	require.NoError(t, h.Start())
	assert.Equal(t, "> one\noneapple\nonedrive\n> ", out.String())
}

func TestStartStopsAtEOF(t *testing.T) {
	h, out := newHandler("one", 1)
	require.NoError(t, h.Start())
	assert.Equal(t, "> one\n> ", out.String())
}

func TestStartSkipsBlankAndRejectedInput(t *testing.T) {
	h, out := newHandler("\n   \non\nOne\ntwo\nexit\n", 0)
	require.NoError(t, h.Start())
	assert.Equal(t, strings.Repeat(prompt, 6), out.String())
}

func TestCustomExitToken(t *testing.T) {
	m := suggest.NewPrefixMatches()
	var out bytes.Buffer
	h := NewInputHandler(m, 0, "", strings.NewReader("exit\n"), &out)
	assert.Equal(t, "exit", h.exitToken)

	h = NewInputHandler(m, 0, "quit", strings.NewReader("exit\nquit\n"), &out)
	require.NoError(t, h.Start())
	assert.Equal(t, strings.Repeat(prompt, 2), out.String())
}

func TestSetColor(t *testing.T) {
	h, _ := newHandler("", 0)
	h.SetColor(true)
	require.NotNil(t, h.style)
	h.SetColor(false)
	assert.Nil(t, h.style)
}
