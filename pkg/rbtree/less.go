package rbtree

import "cmp"

// LessFunc reports whether a sorts strictly before b.
//
// It must be a strict weak ordering: irreflexive, asymmetric, transitive, and
// with a transitive incomparability relation. The ordering is never checked at
// runtime; a LessFunc that breaks these rules yields unspecified (but memory safe)
// results.
type LessFunc[K any] func(a, b K) bool

// Less returns a LessFunc that uses the '<' operator.
func Less[K cmp.Ordered]() LessFunc[K] {
	return cmp.Less[K]
}

// Equivalent reports whether neither key sorts before the other under less.
// This is the only notion of key identity the tree uses.
func Equivalent[K any](less LessFunc[K], a, b K) bool {
	return !less(a, b) && !less(b, a)
}
