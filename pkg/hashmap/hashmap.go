// Package hashmap implements a generic chained hash map with power-of-two
// bucket arrays and load-factor driven growth.
//
// A Map is not safe for concurrent use. Callers sharing one across
// goroutines must synchronize access themselves.
package hashmap

import (
	"math"
	"reflect"

	"github.com/bastiangx/wordkit/pkg/errs"
)

const (
	// DefaultCapacity is the bucket count of a new or cleared map.
	DefaultCapacity = 16
	// MaxCapacity is the largest bucket count the map grows to.
	MaxCapacity = 1 << 30
	// DefaultLoadFactor is used when no load factor is configured.
	DefaultLoadFactor = 0.75
)

// Entry is one key/value pair in a bucket chain.
type Entry[K comparable, V any] struct {
	key   K
	value V
	next  *Entry[K, V]
}

// Key returns the entry key.
func (e *Entry[K, V]) Key() K { return e.key }

// Value returns the entry value.
func (e *Entry[K, V]) Value() V { return e.value }

// Next returns the following entry in the same chain, or nil.
func (e *Entry[K, V]) Next() *Entry[K, V] { return e.next }

// Map is a hash map with separate chaining.
type Map[K comparable, V any] struct {
	table      []*Entry[K, V]
	size       int
	threshold  int
	loadFactor float64
	hash       Hasher[K]
	equal      func(a, b V) bool
	nilable    bool
}

type settings[K comparable, V any] struct {
	capacity   int
	loadFactor float64
	hash       Hasher[K]
	equal      func(a, b V) bool
}

// Option configures a Map at construction.
type Option[K comparable, V any] func(*settings[K, V])

// WithCapacity sets the initial bucket count. It is rounded up to a power
// of two and clamped to MaxCapacity.
func WithCapacity[K comparable, V any](n int) Option[K, V] {
	return func(s *settings[K, V]) { s.capacity = n }
}

// WithLoadFactor sets the ratio of entries to buckets that triggers growth.
func WithLoadFactor[K comparable, V any](f float64) Option[K, V] {
	return func(s *settings[K, V]) { s.loadFactor = f }
}

// WithHasher replaces the default key hasher.
func WithHasher[K comparable, V any](h Hasher[K]) Option[K, V] {
	return func(s *settings[K, V]) { s.hash = h }
}

// WithValueEqual sets the equality used by ContainsValue.
func WithValueEqual[K comparable, V any](eq func(a, b V) bool) Option[K, V] {
	return func(s *settings[K, V]) { s.equal = eq }
}

// New creates an empty map.
func New[K comparable, V any](opts ...Option[K, V]) (*Map[K, V], error) {
	s := settings[K, V]{
		capacity:   DefaultCapacity,
		loadFactor: DefaultLoadFactor,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.capacity <= 0 {
		return nil, errs.Invalidf("illegal initial capacity: %d", s.capacity)
	}
	if s.capacity > MaxCapacity {
		s.capacity = MaxCapacity
	}
	if s.loadFactor <= 0 || math.IsNaN(s.loadFactor) {
		return nil, errs.Invalidf("illegal load factor: %v", s.loadFactor)
	}
	if s.hash == nil {
		s.hash = DefaultHasher[K]()
	}
	if s.equal == nil {
		s.equal = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}

	capacity := 1
	for capacity < s.capacity {
		capacity <<= 1
	}

	return &Map[K, V]{
		table:      make([]*Entry[K, V], capacity),
		threshold:  thresholdFor(capacity, s.loadFactor),
		loadFactor: s.loadFactor,
		hash:       s.hash,
		equal:      s.equal,
		nilable:    canBeNil[K](),
	}, nil
}

func thresholdFor(capacity int, loadFactor float64) int {
	t := float64(capacity) * loadFactor
	if t >= math.MaxInt {
		return math.MaxInt
	}
	return int(t)
}

// bucketOf returns the table index for key. Nil keys always map to 0.
func (m *Map[K, V]) bucketOf(key K, length int) int {
	if m.nilable && isNil(key) {
		return 0
	}
	return indexFor(m.hash(key), length)
}

func (m *Map[K, V]) find(key K) *Entry[K, V] {
	for e := m.table[m.bucketOf(key, len(m.table))]; e != nil; e = e.next {
		if e.key == key {
			return e
		}
	}
	return nil
}

// Size returns the number of entries.
func (m *Map[K, V]) Size() int { return m.size }

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.size == 0 }

// Capacity returns the current bucket count.
func (m *Map[K, V]) Capacity() int { return len(m.table) }

// Threshold returns the size at which the next growth happens.
func (m *Map[K, V]) Threshold() int { return m.threshold }

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key has a mapping.
func (m *Map[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

// Put maps key to value. If key was already present its previous value is
// returned with replaced set.
func (m *Map[K, V]) Put(key K, value V) (prev V, replaced bool) {
	i := m.bucketOf(key, len(m.table))
	for e := m.table[i]; e != nil; e = e.next {
		if e.key == key {
			prev = e.value
			e.value = value
			return prev, true
		}
	}

	m.table[i] = &Entry[K, V]{key: key, value: value, next: m.table[i]}
	m.size++
	if m.size >= m.threshold {
		m.grow()
	}
	return prev, false
}

// nextGrowth returns the bucket count and threshold that follow a table of
// length current. At MaxCapacity the table stays put and the threshold
// becomes unreachable.
func nextGrowth(current int, loadFactor float64) (capacity, threshold int, grow bool) {
	if current >= MaxCapacity {
		return current, math.MaxInt, false
	}
	capacity = min(current*2, MaxCapacity)
	return capacity, thresholdFor(capacity, loadFactor), true
}

func (m *Map[K, V]) grow() {
	capacity, threshold, ok := nextGrowth(len(m.table), m.loadFactor)
	if ok {
		m.resize(capacity)
	}
	m.threshold = threshold
}

// resize re-buckets every entry into a table of the given length.
func (m *Map[K, V]) resize(capacity int) {
	table := make([]*Entry[K, V], capacity)
	for _, head := range m.table {
		for e := head; e != nil; {
			next := e.next
			i := m.bucketOf(e.key, capacity)
			e.next = table[i]
			table[i] = e
			e = next
		}
	}
	m.table = table
}

// Remove deletes the mapping for key and returns its value.
// The bucket array never shrinks.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	i := m.bucketOf(key, len(m.table))
	var prev *Entry[K, V]
	for e := m.table[i]; e != nil; prev, e = e, e.next {
		if e.key != key {
			continue
		}
		if prev == nil {
			m.table[i] = e.next
		} else {
			prev.next = e.next
		}
		m.size--
		return e.value, true
	}
	var zero V
	return zero, false
}

// ContainsValue reports whether any entry holds a value equal to value.
// This is a linear scan.
func (m *Map[K, V]) ContainsValue(value V) bool {
	for _, head := range m.table {
		for e := head; e != nil; e = e.next {
			if m.equal(e.value, value) {
				return true
			}
		}
	}
	return false
}

// Clear drops every entry and resets the table to DefaultCapacity.
func (m *Map[K, V]) Clear() {
	m.table = make([]*Entry[K, V], DefaultCapacity)
	m.size = 0
	m.threshold = thresholdFor(DefaultCapacity, m.loadFactor)
}

// Buckets exposes the bucket array for inspection. The returned slice is a
// copy; the entries must not be modified.
func (m *Map[K, V]) Buckets() []*Entry[K, V] {
	buckets := make([]*Entry[K, V], len(m.table))
	copy(buckets, m.table)
	return buckets
}

// Keys returns the keys in iteration order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}
