package suggest

import "slices"

// Rank sorts terms by descending weight in place. Equal weights keep their
// relative order.
func Rank(terms []Term) {
	slices.SortStableFunc(terms, ByReverseWeight)
}

// TopK returns a ranked copy of terms cut to at most k entries.
// k <= 0 means no limit.
func TopK(terms []Term, k int) []Term {
	ranked := slices.Clone(terms)
	Rank(ranked)
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
