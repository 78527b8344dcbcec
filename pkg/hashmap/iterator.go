package hashmap

import (
	"iter"

	"github.com/bastiangx/wordkit/pkg/errs"
)

// Iterator walks the entries of a Map: buckets in index order, and within a
// bucket from the most to the least recently inserted entry.
//
// Structural changes to the map invalidate the iterator.
type Iterator[K comparable, V any] struct {
	table []*Entry[K, V]
	next  *Entry[K, V]
	index int
}

// Entries returns a new iterator positioned before the first entry.
func (m *Map[K, V]) Entries() *Iterator[K, V] {
	it := &Iterator[K, V]{table: m.table, index: -1}
	it.advance()
	return it
}

func (it *Iterator[K, V]) advance() {
	for it.next == nil && it.index < len(it.table)-1 {
		it.index++
		it.next = it.table[it.index]
	}
}

// HasNext reports whether Next will return an entry.
func (it *Iterator[K, V]) HasNext() bool {
	return it.next != nil
}

// Next returns the next entry, or errs.ErrNoSuchElement once exhausted.
func (it *Iterator[K, V]) Next() (*Entry[K, V], error) {
	if it.next == nil {
		return nil, errs.ErrNoSuchElement
	}
	e := it.next
	it.next = e.next
	it.advance()
	return e, nil
}

// All returns a single-use sequence over the map's entries in iterator
// order. Call All again to restart.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Entries()
		for it.HasNext() {
			e, _ := it.Next()
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}
