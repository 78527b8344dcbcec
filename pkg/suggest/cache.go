package suggest

import (
	"strconv"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache keeps ranked results for recently queried prefixes.
// It is purged whenever the index changes.
type ResultCache struct {
	entries *lru.Cache[string, []Suggestion]
	maxSize int
	hits    int
	misses  int
}

// NewResultCache returns a cache holding up to size results, or nil when
// size is not positive. A nil cache is valid and never hits.
func NewResultCache(size int) *ResultCache {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New[string, []Suggestion](size)
	if err != nil {
		log.Errorf("Failed to create result cache: %v", err)
		return nil
	}
	return &ResultCache{entries: entries, maxSize: size}
}

func cacheKey(prefix string, limit int) string {
	return prefix + "\x00" + strconv.Itoa(limit)
}

// Get returns a copy of the cached result for prefix and limit.
func (rc *ResultCache) Get(prefix string, limit int) ([]Suggestion, bool) {
	if rc == nil {
		return nil, false
	}
	cached, ok := rc.entries.Get(cacheKey(prefix, limit))
	if !ok {
		rc.misses++
		return nil, false
	}
	rc.hits++
	out := make([]Suggestion, len(cached))
	copy(out, cached)
	return out, true
}

// Add stores a copy of result.
func (rc *ResultCache) Add(prefix string, limit int, result []Suggestion) {
	if rc == nil {
		return
	}
	stored := make([]Suggestion, len(result))
	copy(stored, result)
	rc.entries.Add(cacheKey(prefix, limit), stored)
}

// Purge drops every cached result.
func (rc *ResultCache) Purge() {
	if rc == nil {
		return
	}
	if n := rc.entries.Len(); n > 0 {
		log.Debugf("Purging %d cached results", n)
	}
	rc.entries.Purge()
}

// Stats reports cache usage.
func (rc *ResultCache) Stats() map[string]int {
	if rc == nil {
		return map[string]int{"cacheSize": 0}
	}
	return map[string]int{
		"cacheSize":    rc.maxSize,
		"cacheEntries": rc.entries.Len(),
		"cacheHits":    rc.hits,
		"cacheMisses":  rc.misses,
	}
}
