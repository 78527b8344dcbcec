package prefixtree

import (
	"unicode/utf8"

	"github.com/bastiangx/wordkit/pkg/errs"
)

// Alphabet maps key symbols to dense child slots. Child slots are visited
// in index order, so the alphabet also fixes enumeration order.
type Alphabet interface {
	// Size is the number of symbols, and the fan-out of an expanded node.
	Size() int
	// Index returns the slot of r, or false if r is not in the alphabet.
	Index(r rune) (int, bool)
	// Symbol is the inverse of Index.
	Symbol(i int) rune
}

// LowerASCII is the default alphabet: 'a' through 'z'.
var LowerASCII Alphabet = lowerASCII{}

type lowerASCII struct{}

func (lowerASCII) Size() int { return 26 }

func (lowerASCII) Index(r rune) (int, bool) {
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return int(r - 'a'), true
}

func (lowerASCII) Symbol(i int) rune { return rune('a' + i) }

type runeAlphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from symbols, in the given order.
// Symbols must be non-empty, valid UTF-8 and free of duplicates.
func NewAlphabet(symbols string) (Alphabet, error) {
	if symbols == "" {
		return nil, errs.Invalidf("empty alphabet")
	}
	if !utf8.ValidString(symbols) {
		return nil, errs.Invalidf("alphabet is not valid UTF-8")
	}

	a := &runeAlphabet{index: make(map[rune]int)}
	for _, r := range symbols {
		if _, dup := a.index[r]; dup {
			return nil, errs.Invalidf("duplicate alphabet symbol %q", r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

func (a *runeAlphabet) Size() int { return len(a.symbols) }

func (a *runeAlphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

func (a *runeAlphabet) Symbol(i int) rune { return a.symbols[i] }
