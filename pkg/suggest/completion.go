package suggest

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/charmbracelet/log"
)

// Suggestion is one completion as returned to clients.
type Suggestion struct {
	Word            string
	Weight          int64
	WasCorrected    bool   `json:",omitempty"`
	OriginalPrefix  string `json:",omitempty"`
	CorrectedPrefix string `json:",omitempty"`
}

// CompleterOptions tunes a Completer.
type CompleterOptions struct {
	// MinWeight drops terms lighter than this.
	MinWeight int64
	// MinWeightShortPrefix replaces MinWeight for prefixes of two letters or
	// less and for repetitive prefixes such as "eee", when it is larger.
	MinWeightShortPrefix int64
	// SkipExact leaves out the word equal to the prefix itself.
	SkipExact bool
	// Fuzzy enables prefix correction when a prefix has no matches.
	Fuzzy bool
	// CacheSize is the number of cached results; 0 disables the cache.
	CacheSize int
}

// DefaultCompleterOptions returns the options the server starts with.
func DefaultCompleterOptions() CompleterOptions {
	return CompleterOptions{
		SkipExact: true,
		Fuzzy:     true,
		CacheSize: 1024,
	}
}

// Completer answers completion queries against an Index.
type Completer struct {
	index     *Index
	cache     *ResultCache
	corrector *Corrector
	opts      CompleterOptions
	maxWeight int64
}

var _ ICompleter = (*Completer)(nil)

// NewCompleter wraps idx. Terms already in idx are served as is.
func NewCompleter(idx *Index, opts CompleterOptions) *Completer {
	c := &Completer{
		index: idx,
		cache: NewResultCache(opts.CacheSize),
		opts:  opts,
	}
	if opts.Fuzzy {
		c.corrector = NewCorrector(idx)
	}
	for _, term := range idx.Tree().All() {
		c.maxWeight = max(c.maxWeight, term.Weight)
	}
	return c
}

// Index returns the wrapped index.
func (c *Completer) Index() *Index { return c.index }

// AddWord indexes word in lower case with weight. Cached results are dropped.
func (c *Completer) AddWord(word string, weight int64) error {
	lower := strings.ToLower(word)
	if err := c.index.IndexTerm(lower, weight); err != nil {
		return fmt.Errorf("add word %q: %w", word, err)
	}
	if weight > c.maxWeight {
		c.maxWeight = weight
	}
	c.cache.Purge()
	return nil
}

// RemoveWord drops word from the index. Cached results are dropped.
func (c *Completer) RemoveWord(word string) (bool, error) {
	_, removed, err := c.index.Remove(strings.ToLower(word))
	if err != nil {
		return false, fmt.Errorf("remove word %q: %w", word, err)
	}
	if removed {
		c.cache.Purge()
	}
	return removed, nil
}

// CountWithPrefix counts indexed words under the lower-cased prefix.
func (c *Completer) CountWithPrefix(prefix string) (int, error) {
	return c.index.CountWithPrefix(strings.ToLower(prefix))
}

// Complete returns up to limit suggestions for prefix, heaviest first.
// A limit outside (0, k] is clamped to the index's k. The capitalization
// of prefix is carried over to the suggested words.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(prefix)
	capitals := utils.CapitalMask(prefix)

	if k := c.index.MaxSuggestions(); limit <= 0 || limit > k {
		limit = k
	}

	if cached, ok := c.cache.Get(lowerPrefix, limit); ok {
		return present(cached, prefix, capitals)
	}

	suggestions, err := c.collect(lowerPrefix, lowerPrefix, limit)
	if err != nil {
		log.Debugf("Rejecting prefix '%s': %v", prefix, err)
		return []Suggestion{}
	}

	if len(suggestions) == 0 && c.corrector != nil {
		if corrected, ok := c.corrector.Correct(lowerPrefix); ok {
			suggestions, err = c.collect(lowerPrefix, corrected, limit)
			if err != nil {
				log.Errorf("Corrected prefix '%s' is not searchable: %v", corrected, err)
				return []Suggestion{}
			}
			for i := range suggestions {
				suggestions[i].WasCorrected = true
				suggestions[i].CorrectedPrefix = corrected
			}
		}
	}

	c.cache.Add(lowerPrefix, limit, suggestions)
	return present(suggestions, prefix, capitals)
}

// collect filters and ranks the terms under search. typed is the prefix the
// user actually typed and picks the weight threshold.
func (c *Completer) collect(typed, search string, limit int) ([]Suggestion, error) {
	terms, err := c.index.SuggestionsFor(search)
	if err != nil {
		return nil, err
	}

	minWeight := c.opts.MinWeight
	if len(typed) <= 2 || utils.IsRepetitive(typed) {
		minWeight = max(minWeight, c.opts.MinWeightShortPrefix)
	}

	kept := terms[:0]
	for _, term := range terms {
		if c.opts.SkipExact && term.Text == search {
			continue
		}
		if term.Weight < minWeight {
			continue
		}
		kept = append(kept, term)
	}

	ranked := TopK(kept, limit)
	suggestions := make([]Suggestion, len(ranked))
	for i, term := range ranked {
		suggestions[i] = Suggestion{Word: term.Text, Weight: term.Weight}
	}
	return suggestions, nil
}

// present fills in what depends on the exact prefix the caller typed. The
// cache holds lower-cased results, so this runs after every lookup.
func present(suggestions []Suggestion, prefix string, capitals []bool) []Suggestion {
	for i := range suggestions {
		if suggestions[i].WasCorrected {
			suggestions[i].OriginalPrefix = prefix
		}
		if len(capitals) > 0 {
			suggestions[i].Word = utils.ApplyCapitals(suggestions[i].Word, capitals)
		}
	}
	return suggestions
}

// Stats returns statistics about the loaded dictionary and the cache.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":     c.index.Size(),
		"maxWeight":      int(c.maxWeight),
		"maxSuggestions": c.index.MaxSuggestions(),
	}

	for k, v := range c.cache.Stats() {
		stats[k] = v
	}

	if c.corrector != nil {
		stats["fuzzy"] = 1
	} else {
		stats["fuzzy"] = 0
	}
	return stats
}
