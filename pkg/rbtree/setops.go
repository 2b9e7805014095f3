package rbtree

import (
	"fmt"
	"strings"
)

// Subset reports whether every key of sub is present in super, using super's
// ordering for the lookups. It stops at the first missing key.
func Subset[K, V1, V2 any](sub Tree[K, V1], super Tree[K, V2]) bool {
	return sub.All(func(key K, _ V1) bool {
		return super.Contains(key)
	})
}

// SetEqual reports whether left and right hold equivalent key sets. Payloads
// are not compared.
func SetEqual[K, V1, V2 any](left Tree[K, V1], right Tree[K, V2]) bool {
	return Subset(left, right) && Subset(right, left)
}

// ToList returns the elements in ascending key order.
func (tree Tree[K, V]) ToList() []Entry[K, V] {
	out := make([]Entry[K, V], tree.size)

	// Descending traversal filling from the back, i.e. consing onto the front.
	RevFold(tree, len(out), func(idx int, key K, value V) int {
		idx--
		out[idx] = Entry[K, V]{Key: key, Value: value}

		return idx
	})

	return out
}

// Keys returns the keys in ascending order.
func (tree Tree[K, V]) Keys() []K {
	return Fold(tree, make([]K, 0, tree.size), func(acc []K, key K, _ V) []K {
		return append(acc, key)
	})
}

// FromList builds a tree ordered by less from entries. Later entries win when
// keys are equivalent.
func FromList[K, V any](less LessFunc[K], entries []Entry[K, V]) Tree[K, V] {
	builder := NewBuilder[K, V](less)
	builder.InsertEntries(entries...)

	return builder.Tree()
}

// OfList is an alias of FromList.
func OfList[K, V any](less LessFunc[K], entries []Entry[K, V]) Tree[K, V] {
	return FromList(less, entries)
}

// Depth returns the number of branches on the longest root-to-leaf path.
func (tree Tree[K, V]) Depth() int {
	return tree.DepthFunc(func(left, right int) int { return max(left, right) })
}

// DepthFunc generalizes Depth: the depth of a branch is one plus combine
// applied to the depths of its children. A combine returning the smaller
// depth yields the shortest path.
func (tree Tree[K, V]) DepthFunc(combine func(left, right int) int) int {
	return depthNode(tree.root, combine)
}

func depthNode[K, V any](nd *node[K, V], combine func(int, int) int) int {
	if nd == nil {
		return 0
	}

	return combine(depthNode(nd.left, combine), depthNode(nd.right, combine)) + 1
}

// String renders the ascending element list, e.g. "rbmap_of [(1, a), (2, b)]".
func (tree Tree[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("rbmap_of [")

	first := true

	for key, value := range tree.Ascend() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "(%v, %v)", key, value)
	}

	sb.WriteString("]")

	return sb.String()
}
