// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordhood/internal/utils"
	"github.com/bastiangx/wordhood/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads "word [k]" lines and prints the top suggestions for
// each, most important first. "exit" ends the loop.
type InputHandler struct {
	completer      suggest.ICompleter
	maxQueryLength int
	suggestLimit   int
	requestCount   int
	noFilter       bool

	in  io.Reader
	out *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, maxLength, limit int, noFilter bool) *InputHandler {
	return NewInputHandlerWithIO(completer, maxLength, limit, noFilter, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO is NewInputHandler reading from r and printing to w.
func NewInputHandlerWithIO(completer suggest.ICompleter, maxLength, limit int, noFilter bool, r io.Reader, w io.Writer) *InputHandler {
	return &InputHandler{
		completer:      completer,
		maxQueryLength: maxLength,
		suggestLimit:   limit,
		noFilter:       noFilter,
		in:             r,
		out: log.NewWithOptions(w, log.Options{
			ReportTimestamp: false,
			Level:           log.GetLevel(),
		}),
	}
}

// Start runs the loop until input ends or "exit" is typed.
func (h *InputHandler) Start() error {
	h.out.Print("wordhood CLI")
	h.out.Print("type a word and optionally a count, then press Enter (exit to quit):")

	scanner := bufio.NewScanner(h.in)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}
		h.handleInput(line)
	}
}

// parseLine splits "word [k]". A missing k falls back to the default limit.
func (h *InputHandler) parseLine(line string) (string, int, bool) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return fields[0], h.suggestLimit, true
	case 2:
		k, err := strconv.Atoi(fields[1])
		if err != nil || k < 0 {
			h.out.Errorf("Invalid count: %s", fields[1])
			return "", 0, false
		}
		return fields[0], k, true
	default:
		h.out.Errorf("Expected 'word [k]', got: %s", line)
		return "", 0, false
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	word, k, ok := h.parseLine(line)
	if !ok {
		return
	}

	if h.maxQueryLength > 0 && len(word) > h.maxQueryLength {
		h.out.Errorf("Word too long: %s", word)
		return
	}

	if !h.noFilter && !utils.IsValidInput(word) {
		h.out.Infof("No results found for '%s'", word)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(word, k)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for '%s' (request %d)", elapsed, word, h.requestCount)

	if len(suggestions) == 0 {
		h.out.Warnf("No suggestions found for '%s'", word)
		return
	}

	h.out.Printf("Found %d suggestions for '%s':", len(suggestions), word)
	for i, s := range suggestions {
		h.out.Printf("%2d. %-30s (importance: %8s)", i+1, wordStyle.Render(s.Word), utils.FormatWithCommas(s.Importance))
	}
}
