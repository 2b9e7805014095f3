package rbtree

import (
	"cmp"
	"fmt"
	"iter"
	"strings"
)

// Set is a persistent ordered set: a Tree whose payload is Unit.
type Set[K any] struct {
	tree Tree[K, Unit]
}

// NewSet returns an empty set ordered by less.
func NewSet[K any](less LessFunc[K]) Set[K] {
	return Set[K]{tree: New[K, Unit](less)}
}

// NewOrderedSet returns an empty set ordered by the '<' operator.
func NewOrderedSet[K cmp.Ordered]() Set[K] {
	return NewSet(Less[K]())
}

// SetFromList builds a set from keys. A later key replaces an equivalent
// earlier one.
func SetFromList[K any](less LessFunc[K], keys []K) Set[K] {
	builder := NewBuilder[K, Unit](less)

	for _, key := range keys {
		builder.Insert(key, Unit{})
	}

	return Set[K]{tree: builder.Tree()}
}

// Tree exposes the set as a map with Unit payloads, for use with Fold and
// the other package-level functions.
func (set Set[K]) Tree() Tree[K, Unit] {
	return set.tree
}

// Insert returns a set that contains key. An equivalent stored key is replaced.
func (set Set[K]) Insert(key K) Set[K] {
	return Set[K]{tree: set.tree.Insert(key, Unit{})}
}

// Contains reports whether an equivalent key is present.
func (set Set[K]) Contains(key K) bool {
	return set.tree.Contains(key)
}

// Lookup returns the stored key equivalent to key.
func (set Set[K]) Lookup(key K) (K, bool) {
	entry, ok := set.tree.FindEntry(key)

	return entry.Key, ok
}

// Len returns the number of keys.
func (set Set[K]) Len() int {
	return set.tree.Len()
}

// IsEmpty reports whether the set has no keys.
func (set Set[K]) IsEmpty() bool {
	return set.tree.IsEmpty()
}

// Min returns the smallest key.
func (set Set[K]) Min() (K, bool) {
	entry, ok := set.tree.Min()

	return entry.Key, ok
}

// Max returns the largest key.
func (set Set[K]) Max() (K, bool) {
	entry, ok := set.tree.Max()

	return entry.Key, ok
}

// All reports whether pred holds for every key.
func (set Set[K]) All(pred func(K) bool) bool {
	return set.tree.All(func(key K, _ Unit) bool { return pred(key) })
}

// Any reports whether pred holds for some key.
func (set Set[K]) Any(pred func(K) bool) bool {
	return set.tree.Any(func(key K, _ Unit) bool { return pred(key) })
}

// SubsetOf reports whether every key of set is in other.
func (set Set[K]) SubsetOf(other Set[K]) bool {
	return Subset(set.tree, other.tree)
}

// Equal reports whether both sets hold equivalent keys.
func (set Set[K]) Equal(other Set[K]) bool {
	return SetEqual(set.tree, other.tree)
}

// Keys returns the keys in ascending order.
func (set Set[K]) Keys() []K {
	return set.tree.Keys()
}

// Ascend returns an iterator over the keys in ascending order.
func (set Set[K]) Ascend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range set.tree.Ascend() {
			if !yield(key) {
				return
			}
		}
	}
}

// Depth returns the length of the longest root-to-leaf path.
func (set Set[K]) Depth() int {
	return set.tree.Depth()
}

// Check verifies the red-black invariants, see Tree.Check.
func (set Set[K]) Check() error {
	return set.tree.Check()
}

// String renders the keys, e.g. "rbtree_of [1, 2, 3]".
func (set Set[K]) String() string {
	var sb strings.Builder

	sb.WriteString("rbtree_of [")

	for idx, key := range set.Keys() {
		if idx > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprint(&sb, key)
	}

	sb.WriteString("]")

	return sb.String()
}
