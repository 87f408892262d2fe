package bptree

import "github.com/ghduque/indexlab/internal/record"

// node is one page of the tree. The two shapes share the key slice and the
// min/max bounds; records and the next-leaf link are leaf-only, children are
// internal-only. A tagged struct keeps the variant dispatch explicit instead
// of hiding it behind an interface.
type node struct {
	leaf bool
	keys []int32

	// leaf shape: records aligned 1:1 with keys, plus the chain link.
	records []record.Record
	next    *node

	// internal shape: len(children) == len(keys)+1 at rest.
	children []*node

	// parent is a non-owning back link; nil for the root.
	parent *node

	maxKeys int
	minKeys int
}

func newLeaf(c capacity) *node {
	return &node{leaf: true, maxKeys: c.leafMaxKeys, minKeys: c.leafMinKeys}
}

func newInternal(c capacity) *node {
	return &node{maxKeys: c.internalMaxKeys, minKeys: c.internalMinKeys}
}

func (n *node) overflowed() bool  { return len(n.keys) > n.maxKeys }
func (n *node) underflowed() bool { return len(n.keys) < n.minKeys }

// insertEntry places (key, rec) into a leaf keeping key order. Equal keys are
// kept and the new entry lands after the existing ones, matching a stable
// merge.
func (n *node) insertEntry(key int32, rec record.Record) {
	i := len(n.keys)
	for i > 0 && n.keys[i-1] > key {
		i--
	}
	n.keys = append(n.keys, 0)
	copy(n.keys[i+1:], n.keys[i:])
	n.keys[i] = key

	n.records = append(n.records, nil)
	copy(n.records[i+1:], n.records[i:])
	n.records[i] = rec
}

// insertChild places a promoted separator and the child to its right into an
// internal node, keeping key order.
func (n *node) insertChild(key int32, child *node) {
	i := 0
	for i < len(n.keys) && key > n.keys[i] {
		i++
	}
	n.keys = append(n.keys, 0)
	copy(n.keys[i+1:], n.keys[i:])
	n.keys[i] = key

	n.children = append(n.children, nil)
	copy(n.children[i+2:], n.children[i+1:])
	n.children[i+1] = child
	child.parent = n
}

// childIndex locates n within its parent's child list.
func (n *node) childIndex() int {
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}
