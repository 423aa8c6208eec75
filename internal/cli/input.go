// Package cli handles cmd line input and suggestions for DBG and testing the matcher
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/prefixserve/internal/logger"
	"github.com/bastiangx/prefixserve/internal/utils"
	"github.com/bastiangx/prefixserve/pkg/suggest"
	"github.com/bastiangx/prefixserve/pkg/trie"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const prompt = "> "

// InputHandler reads one prefix per line and prints each suggestion on its
// own line. The exit token or end of input stops the loop.
type InputHandler struct {
	matcher   suggest.IMatcher
	k         int
	exitToken string
	in        io.Reader
	out       io.Writer
	style     *lipgloss.Style
	logger    *log.Logger
}

// NewInputHandler handles initialization of the InputHandler. A k below 1
// uses the matcher default.
func NewInputHandler(matcher suggest.IMatcher, k int, exitToken string, in io.Reader, out io.Writer) *InputHandler {
	if exitToken == "" {
		exitToken = "exit"
	}
	return &InputHandler{
		matcher:   matcher,
		k:         k,
		exitToken: exitToken,
		in:        in,
		out:       out,
		logger:    logger.New("cli"),
	}
}

// SetColor toggles colored suggestions
func (h *InputHandler) SetColor(on bool) {
	if !on {
		h.style = nil
		return
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	h.style = &style
}

// Start begins the interface loop.
// It prompts, reads a line and hands the trimmed input to handleInput.
func (h *InputHandler) Start() error {
	h.logger.Debug("Starting CLI", "k", h.k, "exit", h.exitToken)
	scanner := bufio.NewScanner(h.in)

	for {
		fmt.Fprint(h.out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}
		prefix := strings.TrimSpace(scanner.Text())
		if prefix == "" {
			continue
		}
		if prefix == h.exitToken {
			h.logger.Debug("Exit token received")
			return nil
		}
		h.handleInput(prefix)
	}
}

// handleInput validates the prefix, then prints every suggestion.
func (h *InputHandler) handleInput(prefix string) {
	if !utils.IsValidInput(prefix) {
		h.logger.Warnf("Only lowercase a-z is indexed, ignoring '%s'", prefix)
		return
	}

	start := time.Now()
	var it trie.Iterator
	var err error
	if h.k > 0 {
		it, err = h.matcher.WordsWithPrefixK(prefix, h.k)
	} else {
		it, err = h.matcher.WordsWithPrefix(prefix)
	}
	if err != nil {
		if errors.Is(err, suggest.ErrInvalidArgument) {
			h.logger.Errorf("Prefix too short: %v", err)
		} else {
			h.logger.Error("Lookup failed", "prefix", prefix, "err", err)
		}
		return
	}

	count := 0
	for word := range trie.All(it) {
		if h.style != nil {
			word = h.style.Render(word)
		}
		fmt.Fprintln(h.out, word)
		count++
	}
	h.logger.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)
	if count == 0 {
		h.logger.Warnf("No suggestions found for prefix: '%s'", prefix)
	}
}
