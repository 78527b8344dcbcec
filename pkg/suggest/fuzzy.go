package suggest

import (
	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/log"
)

// minCorrectLen is the shortest prefix worth correcting.
const minCorrectLen = 3

// Corrector finds the closest indexed prefix for a prefix with no matches.
//
// preference: smallest edit distance > highest weight > alphabetical
type Corrector struct {
	index *Index
}

// NewCorrector returns a corrector backed by idx.
func NewCorrector(idx *Index) *Corrector {
	return &Corrector{index: idx}
}

// maxDistance allows one edit for short prefixes and two for longer ones.
func maxDistance(prefix string) int {
	if len(prefix) <= 4 {
		return 1
	}
	return 2
}

// Correct returns a prefix of some indexed word within edit distance of
// prefix. Only words sharing the first letter are considered.
func (c *Corrector) Correct(prefix string) (string, bool) {
	if len(prefix) < minCorrectLen {
		return prefix, false
	}

	limit := maxDistance(prefix)
	best, bestDist := "", limit+1
	var bestWeight int64

	err := c.index.Tree().WalkPrefix(prefix[:1], func(word string, term Term) error {
		candidate := word
		if len(candidate) > len(prefix) {
			candidate = candidate[:len(prefix)]
		}
		dist := levenshtein.ComputeDistance(prefix, candidate)
		if dist == 0 || dist > limit {
			return nil
		}

		better := dist < bestDist ||
			(dist == bestDist && term.Weight > bestWeight) ||
			(dist == bestDist && term.Weight == bestWeight && candidate < best)
		if better {
			best, bestDist, bestWeight = candidate, dist, term.Weight
		}
		return nil
	})
	if err != nil {
		log.Debugf("Skipping correction for '%s': %v", prefix, err)
		return prefix, false
	}

	if best == "" {
		return prefix, false
	}
	log.Debugf("Corrected prefix '%s' to '%s' (distance %d)", prefix, best, bestDist)
	return best, true
}
