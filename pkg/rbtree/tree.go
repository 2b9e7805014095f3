// Package rbtree provides a persistent ordered map and set built on a
// red-black tree.
//
// Every update returns a new Tree and leaves the receiver untouched; versions
// share unchanged subtrees. A Builder offers the same insertion with in-place
// updates of nodes it exclusively owns, which is invisible to every Tree
// published before or after.
//
// Trees are safe for concurrent readers. Builders are not safe for concurrent
// use.
package rbtree

import "cmp"

// Unit is the payload of set trees.
type Unit = struct{}

// Entry is a key and its payload.
type Entry[K, V any] struct {
	Key   K `json:"key"   yaml:"key"`
	Value V `json:"value" yaml:"value"`
}

// Tree is an immutable handle to one version of an ordered map.
//
// The zero Tree is empty and can be read, but has no comparator; use New or
// NewOrdered to get a tree that accepts inserts.
type Tree[K, V any] struct {
	root *node[K, V]
	less LessFunc[K]
	size int
}

// New returns an empty tree ordered by less.
func New[K, V any](less LessFunc[K]) Tree[K, V] {
	return Tree[K, V]{root: nil, less: less, size: 0}
}

// NewOrdered returns an empty tree ordered by the '<' operator.
func NewOrdered[K cmp.Ordered, V any]() Tree[K, V] {
	return New[K, V](Less[K]())
}

// Comparator returns the ordering the tree was created with.
func (tree Tree[K, V]) Comparator() LessFunc[K] {
	return tree.less
}

// IsEmpty reports whether the tree holds no elements.
func (tree Tree[K, V]) IsEmpty() bool {
	return tree.root == nil
}

// Len returns the number of elements in the tree.
func (tree Tree[K, V]) Len() int {
	return tree.size
}

// Empty returns an empty tree with the same comparator.
func (tree Tree[K, V]) Empty() Tree[K, V] {
	return New[K, V](tree.less)
}

// Insert returns a tree that maps key to value. If an equivalent key is
// already present, both the stored key and its value are replaced by the new
// ones. The receiver is not modified.
func (tree Tree[K, V]) Insert(key K, value V) Tree[K, V] {
	root, added := insertRoot(tree.less, nil, tree.root, key, value)

	next := Tree[K, V]{root: root, less: tree.less, size: tree.size}
	if added {
		next.size++
	}

	return next
}

// Builder starts a Builder from the tree's contents. The tree itself is never
// modified by the builder.
func (tree Tree[K, V]) Builder() *Builder[K, V] {
	return &Builder[K, V]{tree: tree, own: new(owner)}
}
