package suggest

import (
	"cmp"
	"strconv"
	"strings"
)

// Term is an indexed word and its weight. Higher weights rank first.
type Term struct {
	Text   string
	Weight int64
}

// String renders the term as "<weight>\t<text>", the same layout the
// dictionary files use.
func (t Term) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(t.Weight, 10))
	b.WriteByte('\t')
	b.WriteString(t.Text)
	return b.String()
}

// Compare orders terms lexicographically by text.
func Compare(a, b Term) int {
	return strings.Compare(a.Text, b.Text)
}

// ByReverseWeight orders terms by descending weight, for slices.SortFunc.
func ByReverseWeight(a, b Term) int {
	return cmp.Compare(b.Weight, a.Weight)
}
