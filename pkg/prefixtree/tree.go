// Package prefixtree implements a generic character-keyed trie with
// prefix counting and ordered prefix enumeration.
//
// Keys are strings over a fixed Alphabet (lower-case ASCII by default).
// Any value, including a zero value, can be stored: presence is tracked per
// node, not inferred from the value.
//
// A Tree is not safe for concurrent use.
package prefixtree

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/bastiangx/wordkit/pkg/errs"
)

// KeyError reports a key or prefix containing a symbol outside the alphabet.
type KeyError struct {
	Key    string
	Offset int
	Rune   rune
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid symbol %q at offset %d in key %q", e.Rune, e.Offset, e.Key)
}

// Unwrap lets callers match errs.ErrInvalidArgument.
func (e *KeyError) Unwrap() error { return errs.ErrInvalidArgument }

// Tree is a trie mapping strings to values of type V.
type Tree[V any] struct {
	root     *Node[V]
	size     int
	alphabet Alphabet
	equal    func(a, b V) bool
}

// Option configures a Tree.
type Option[V any] func(*Tree[V])

// WithAlphabet replaces the default LowerASCII alphabet.
func WithAlphabet[V any](a Alphabet) Option[V] {
	return func(t *Tree[V]) { t.alphabet = a }
}

// WithValueEqual sets the equality used by ContainsValue.
func WithValueEqual[V any](eq func(a, b V) bool) Option[V] {
	return func(t *Tree[V]) { t.equal = eq }
}

// New returns an empty tree.
func New[V any](opts ...Option[V]) *Tree[V] {
	t := &Tree[V]{
		root:     &Node[V]{},
		alphabet: LowerASCII,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.equal == nil {
		t.equal = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	return t
}

// Alphabet returns the alphabet keys are validated against.
func (t *Tree[V]) Alphabet() Alphabet { return t.alphabet }

// Root exposes the root node for inspection. Callers must not modify it.
func (t *Tree[V]) Root() *Node[V] { return t.root }

// Size returns the number of stored keys.
func (t *Tree[V]) Size() int { return t.size }

// IsEmpty reports whether no keys are stored.
func (t *Tree[V]) IsEmpty() bool { return t.size == 0 }

// Clear removes every key.
func (t *Tree[V]) Clear() {
	t.root = &Node[V]{}
	t.size = 0
}

func (t *Tree[V]) check(key string) error {
	for i, r := range key {
		if _, ok := t.alphabet.Index(r); !ok {
			return &KeyError{Key: key, Offset: i, Rune: r}
		}
	}
	return nil
}

// find walks key from the root and returns the node it ends at, or nil.
// key must already be checked.
func (t *Tree[V]) find(key string) *Node[V] {
	n := t.root
	for _, r := range key {
		i, _ := t.alphabet.Index(r)
		if n = n.Child(i); n == nil {
			return nil
		}
	}
	return n
}

// Put stores value under key. When key was already present, the previous
// value is returned with replaced set.
func (t *Tree[V]) Put(key string, value V) (prev V, replaced bool, err error) {
	if err := t.check(key); err != nil {
		return prev, false, err
	}

	n := t.root
	fanout := t.alphabet.Size()
	for _, r := range key {
		i, _ := t.alphabet.Index(r)
		child := n.Child(i)
		if child == nil {
			child = &Node[V]{}
			n.setChild(i, fanout, child)
		}
		n = child
	}

	prev, replaced = n.Value()
	if !replaced {
		t.size++
	}
	n.set(value)
	return prev, replaced, nil
}

// Get returns the value stored under key.
func (t *Tree[V]) Get(key string) (V, bool, error) {
	var zero V
	if err := t.check(key); err != nil {
		return zero, false, err
	}
	n := t.find(key)
	if n == nil {
		return zero, false, nil
	}
	v, ok := n.Value()
	return v, ok, nil
}

// ContainsKey reports whether key is stored.
func (t *Tree[V]) ContainsKey(key string) (bool, error) {
	_, ok, err := t.Get(key)
	return ok, err
}

// ContainsValue reports whether any key maps to value.
func (t *Tree[V]) ContainsValue(value V) bool {
	stack := []*Node[V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.hasValue && t.equal(n.value, value) {
			return true
		}
		for _, c := range n.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	return false
}

type step[V any] struct {
	parent *Node[V]
	slot   int
}

// Remove deletes key and returns its value. Nodes left without a value or
// children are pruned on the way back to the root.
func (t *Tree[V]) Remove(key string) (V, bool, error) {
	var zero V
	if err := t.check(key); err != nil {
		return zero, false, err
	}

	path := make([]step[V], 0, len(key))
	n := t.root
	for _, r := range key {
		i, _ := t.alphabet.Index(r)
		child := n.Child(i)
		if child == nil {
			return zero, false, nil
		}
		path = append(path, step[V]{parent: n, slot: i})
		n = child
	}
	if !n.hasValue {
		return zero, false, nil
	}

	v := n.unset()
	t.size--

	fanout := t.alphabet.Size()
	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		if !s.parent.Child(s.slot).dead() {
			break
		}
		s.parent.setChild(s.slot, fanout, nil)
	}
	return v, true, nil
}

// CountPrefixes returns how many stored keys start with prefix. The empty
// prefix matches every key.
func (t *Tree[V]) CountPrefixes(prefix string) (int, error) {
	if err := t.check(prefix); err != nil {
		return 0, err
	}
	n := t.find(prefix)
	if n == nil {
		return 0, nil
	}
	return count(n), nil
}

func count[V any](n *Node[V]) int {
	c := 0
	if n.hasValue {
		c = 1
	}
	for _, child := range n.children {
		if child != nil {
			c += count(child)
		}
	}
	return c
}

// ValuesWithPrefix returns the values of every key starting with prefix.
// A node's own value comes before its children's, and children are visited
// in alphabet order. The result is empty, not nil, when nothing matches.
func (t *Tree[V]) ValuesWithPrefix(prefix string) ([]V, error) {
	if err := t.check(prefix); err != nil {
		return nil, err
	}
	values := []V{}
	if n := t.find(prefix); n != nil {
		values = collect(n, values)
	}
	return values, nil
}

func collect[V any](n *Node[V], values []V) []V {
	if n.hasValue {
		values = append(values, n.value)
	}
	for _, child := range n.children {
		if child != nil {
			values = collect(child, values)
		}
	}
	return values
}

// WalkPrefix calls fn for every key starting with prefix, in the same order
// as ValuesWithPrefix. Walking stops at the first error fn returns.
func (t *Tree[V]) WalkPrefix(prefix string, fn func(key string, value V) error) error {
	if err := t.check(prefix); err != nil {
		return err
	}
	n := t.find(prefix)
	if n == nil {
		return nil
	}

	var err error
	t.walk(n, []rune(prefix), func(key []rune, v V) bool {
		err = fn(string(key), v)
		return err == nil
	})
	return err
}

// All yields every key and value in preorder, alphabet order.
func (t *Tree[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		t.walk(t.root, nil, func(key []rune, v V) bool {
			return yield(string(key), v)
		})
	}
}

func (t *Tree[V]) walk(n *Node[V], key []rune, fn func([]rune, V) bool) bool {
	if n.hasValue && !fn(key, n.value) {
		return false
	}
	for i, child := range n.children {
		if child == nil {
			continue
		}
		if !t.walk(child, append(key, t.alphabet.Symbol(i)), fn) {
			return false
		}
	}
	return true
}
