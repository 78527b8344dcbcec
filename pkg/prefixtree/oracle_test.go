package prefixtree

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tchap/go-patricia/v2/patricia"
)

// randomWord draws from a small alphabet so that words share long prefixes.
func randomWord(r *rand.Rand) string {
	n := 1 + r.IntN(7)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + r.IntN(4))
	}
	return string(b)
}

func patriciaSubtree(t *testing.T, trie *patricia.Trie, prefix string) ([]string, []int) {
	t.Helper()
	var keys []string
	values := map[string]int{}
	visit := func(p patricia.Prefix, item patricia.Item) error {
		keys = append(keys, string(p))
		values[string(p)] = item.(int)
		return nil
	}

	var err error
	if prefix == "" {
		err = trie.Visit(visit)
	} else {
		err = trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		t.Fatalf("patricia visit: %v", err)
	}

	slices.Sort(keys)
	ordered := make([]int, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, values[k])
	}
	return keys, ordered
}

// TestAgainstPatricia drives the tree and go-patricia with the same random
// puts and removes and compares every prefix query. Preorder alphabetic
// enumeration is lexicographic order, so sorted patricia output must match
// ours exactly.
func TestAgainstPatricia(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	tree := New[int]()
	oracle := patricia.NewTrie()

	for i := 0; i < 4000; i++ {
		word := randomWord(r)
		if r.IntN(4) == 0 {
			_, removed, err := tree.Remove(word)
			if err != nil {
				t.Fatalf("Remove(%q): %v", word, err)
			}
			// Delete also reports true for itemless interior nodes.
			had := oracle.Get(patricia.Prefix(word)) != nil
			oracle.Delete(patricia.Prefix(word))
			if removed != had {
				t.Fatalf("Remove(%q) = %v, patricia held key: %v", word, removed, had)
			}
			continue
		}
		if _, _, err := tree.Put(word, i); err != nil {
			t.Fatalf("Put(%q): %v", word, err)
		}
		oracle.Set(patricia.Prefix(word), i)
	}

	prefixes := []string{"", "a", "b", "ab", "ba", "cd", "dddd", "abcabc", "ddddddd", "e"}
	for i := 0; i < 50; i++ {
		w := randomWord(r)
		prefixes = append(prefixes, w[:1+r.IntN(len(w))])
	}

	for _, prefix := range prefixes {
		wantKeys, wantValues := patriciaSubtree(t, oracle, prefix)

		n, err := tree.CountPrefixes(prefix)
		if err != nil {
			t.Fatalf("CountPrefixes(%q): %v", prefix, err)
		}
		if n != len(wantKeys) {
			t.Errorf("CountPrefixes(%q) = %d, patricia has %d", prefix, n, len(wantKeys))
		}

		values, _ := tree.ValuesWithPrefix(prefix)
		if diff := cmp.Diff(wantValues, values); diff != "" {
			t.Errorf("ValuesWithPrefix(%q) (-patricia +tree):\n%s", prefix, diff)
		}

		var keys []string
		tree.WalkPrefix(prefix, func(key string, _ int) error {
			keys = append(keys, key)
			return nil
		})
		if diff := cmp.Diff(wantKeys, keys); diff != "" {
			t.Errorf("WalkPrefix(%q) keys (-patricia +tree):\n%s", prefix, diff)
		}
	}

	if n := count(tree.Root()); n != tree.Size() {
		t.Errorf("size counter %d disagrees with %d valued nodes", tree.Size(), n)
	}
}
