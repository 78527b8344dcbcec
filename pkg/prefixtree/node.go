package prefixtree

import "iter"

// Node is one symbol position in the tree. Nodes are exposed read-only
// through Tree.Root for inspection tools.
type Node[V any] struct {
	value    V
	hasValue bool
	// children is nil until the first child is attached.
	children []*Node[V]
	// live counts the non-nil entries of children.
	live int
}

// Value returns the value stored at the node and whether there is one.
func (n *Node[V]) Value() (V, bool) { return n.value, n.hasValue }

// HasValue reports whether a key terminates at this node.
func (n *Node[V]) HasValue() bool { return n.hasValue }

// HasChildren reports whether the node has at least one child.
func (n *Node[V]) HasChildren() bool { return n.live > 0 }

// Child returns the child in alphabet slot i, or nil.
func (n *Node[V]) Child(i int) *Node[V] {
	if n.children == nil || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children yields the non-nil children with their alphabet slots, in
// slot order.
func (n *Node[V]) Children() iter.Seq2[int, *Node[V]] {
	return func(yield func(int, *Node[V]) bool) {
		for i, c := range n.children {
			if c != nil && !yield(i, c) {
				return
			}
		}
	}
}

func (n *Node[V]) setChild(i, fanout int, c *Node[V]) {
	if n.children == nil {
		if c == nil {
			return
		}
		n.children = make([]*Node[V], fanout)
	}

	switch old := n.children[i]; {
	case old == nil && c != nil:
		n.live++
	case old != nil && c == nil:
		n.live--
	}
	n.children[i] = c

	if n.live == 0 {
		n.children = nil
	}
}

func (n *Node[V]) set(v V) {
	n.value = v
	n.hasValue = true
}

func (n *Node[V]) unset() V {
	v := n.value
	var zero V
	n.value = zero
	n.hasValue = false
	return v
}

// dead reports whether the node can be detached from its parent.
func (n *Node[V]) dead() bool {
	return !n.hasValue && n.live == 0
}
