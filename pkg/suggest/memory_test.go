//go:build test

package suggest

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"testing"
)

var testPrefixes = []string{
	"a", "ab", "abc", "abcd",
	"h", "he", "hel", "hell", "hello",
	"w", "wo", "wor", "worl", "world",
	"p", "pr", "pro", "prog", "program",
	"c", "co", "com", "comp", "computer",
}

// syntheticCompleter indexes n random words of 3 to 10 letters.
func syntheticCompleter(t *testing.T, n, cacheSize int) *Completer {
	t.Helper()
	idx, err := NewIndex(10)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	buf := make([]byte, 10)
	for i := 0; i < n; i++ {
		size := 3 + rng.IntN(8)
		for j := 0; j < size; j++ {
			buf[j] = byte('a' + rng.IntN(26))
		}
		if err := idx.IndexTerm(string(buf[:size]), rng.Int64N(100000)); err != nil {
			t.Fatal(err)
		}
	}
	for i, w := range testPrefixes {
		if err := idx.IndexTerm(w+"s", int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	return NewCompleter(idx, CompleterOptions{SkipExact: true, Fuzzy: true, CacheSize: cacheSize})
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	completer := syntheticCompleter(t, 50000, 0)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		for _, prefix := range testPrefixes {
			_ = completer.Complete(prefix, 10)
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	totalOps := iterations * len(testPrefixes)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
	runtime.KeepAlive(completer)
}

func TestMemoryBoundedCache(t *testing.T) {
	const cacheSize = 64
	completer := syntheticCompleter(t, 20000, cacheSize)

	for i := 0; i < 50; i++ {
		for _, prefix := range testPrefixes {
			_ = completer.Complete(prefix, 1+i%10)
		}
	}

	stats := completer.Stats()
	if stats["cacheEntries"] > cacheSize {
		t.Errorf("cache holds %d results, want at most %d", stats["cacheEntries"], cacheSize)
	}
	t.Logf("hits=%d misses=%d entries=%d", stats["cacheHits"], stats["cacheMisses"], stats["cacheEntries"])
}

func TestMemoryReleasedOnRemove(t *testing.T) {
	completer := syntheticCompleter(t, 20000, 0)
	idx := completer.Index()

	var words []string
	for w := range idx.Tree().All() {
		words = append(words, w)
	}
	for _, w := range words {
		if _, err := completer.RemoveWord(w); err != nil {
			t.Fatal(err)
		}
	}

	if idx.Size() != 0 || idx.Tree().Root().HasChildren() {
		t.Errorf("index not empty after removing every word: size=%d", idx.Size())
	}
}
