package suggest

import (
	"github.com/bastiangx/wordkit/pkg/errs"
	"github.com/bastiangx/wordkit/pkg/prefixtree"
)

// Index stores weighted terms in a prefix tree keyed by their text.
// Keys must be lower-case ASCII words; normalizing input is up to the caller.
type Index struct {
	tree *prefixtree.Tree[Term]
	k    int
}

// NewIndex returns an empty index. k is the maximum number of suggestions
// downstream consumers should display; the index itself never truncates.
func NewIndex(k int) (*Index, error) {
	if k <= 0 {
		return nil, errs.Invalidf("illegal suggestion count: %d", k)
	}
	return &Index{tree: prefixtree.New[Term](), k: k}, nil
}

// IndexTerm adds text with weight, replacing any earlier term for text.
func (idx *Index) IndexTerm(text string, weight int64) error {
	_, _, err := idx.tree.Put(text, Term{Text: text, Weight: weight})
	return err
}

// CountWithPrefix returns how many indexed terms start with prefix.
func (idx *Index) CountWithPrefix(prefix string) (int, error) {
	return idx.tree.CountPrefixes(prefix)
}

// SuggestionsFor returns every term starting with prefix in alphabetical
// order, not ranked. Use Rank or TopK to order by weight.
func (idx *Index) SuggestionsFor(prefix string) ([]Term, error) {
	return idx.tree.ValuesWithPrefix(prefix)
}

// Lookup returns the term indexed under text.
func (idx *Index) Lookup(text string) (Term, bool, error) {
	return idx.tree.Get(text)
}

// Remove drops the term indexed under text.
func (idx *Index) Remove(text string) (Term, bool, error) {
	return idx.tree.Remove(text)
}

// MaxSuggestions returns k.
func (idx *Index) MaxSuggestions() int { return idx.k }

// Size returns the number of indexed terms.
func (idx *Index) Size() int { return idx.tree.Size() }

// Tree exposes the underlying tree for inspection tools.
func (idx *Index) Tree() *prefixtree.Tree[Term] { return idx.tree }
