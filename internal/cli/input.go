// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

var (
	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	correctedStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
)

// InputHandler processes user input, providing suggestions. It accepts many
// flags to control behavior such as minimum and maximum prefix length,
// suggestion limits, and filtering options.
//
// Lines starting with ':' are commands:
//
//	:count <prefix>        number of indexed words under prefix
//	:add <word> <weight>   index a word
//	:stats                 completer statistics
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	out             io.Writer
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, out io.Writer, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		out:             out,
	}
}

// Start reads lines from in until it is exhausted.
func (h *InputHandler) Start(in io.Reader) error {
	fmt.Fprintln(h.out, "wordkit CLI")
	fmt.Fprintln(h.out, "type a prefix and press Enter to see the suggestions (Ctrl+C to exit):")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if err := h.handleCommand(line[1:]); err != nil {
				fmt.Fprintf(h.out, "error: %v\n", err)
			}
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errors.New("empty command")
	}

	switch fields[0] {
	case "count":
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[1]
		}
		n, err := h.completer.CountWithPrefix(prefix)
		if err != nil {
			return err
		}
		fmt.Fprintf(h.out, "%s words start with '%s'\n", humanize.Comma(int64(n)), prefix)
	case "add":
		if len(fields) != 3 {
			return errors.New("usage: :add <word> <weight>")
		}
		weight, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", fields[2], err)
		}
		if err := h.completer.AddWord(fields[1], weight); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "added %s (%s)\n", fields[1], humanize.Comma(weight))
	case "stats":
		stats := h.completer.Stats()
		for _, key := range []string{"totalWords", "maxWeight", "maxSuggestions", "cacheSize", "cacheHits", "cacheMisses", "fuzzy"} {
			if v, ok := stats[key]; ok {
				fmt.Fprintf(h.out, "%-15s %s\n", key, humanize.Comma(int64(v)))
			}
		}
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

// handleInput validates the prefix's length and content, then asks the
// completer for suggestions and prints them.
func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) < h.minPrefixLength {
		fmt.Fprintf(h.out, "prefix too short: %s\n", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		fmt.Fprintf(h.out, "prefix too long: %s\n", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter && !utils.IsValidInput(prefix) {
		fmt.Fprintf(h.out, "no suggestions for '%s'\n", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		fmt.Fprintf(h.out, "no suggestions for '%s'\n", prefix)
		return
	}

	if suggestions[0].WasCorrected {
		fmt.Fprintln(h.out, correctedStyle.Render(fmt.Sprintf("showing results for '%s'", suggestions[0].CorrectedPrefix)))
	}
	fmt.Fprintf(h.out, "found %d suggestions for '%s':\n", len(suggestions), prefix)
	for i, s := range suggestions {
		fmt.Fprintf(h.out, "%2d. %-30s (weight: %8s)\n", i+1, wordStyle.Render(s.Word), humanize.Comma(s.Weight))
	}
}
