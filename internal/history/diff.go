package history

import "github.com/Sumatoshi-tech/rbtree/pkg/rbtree"

// Delta lists how one version differs from another.
type Delta[K, V any] struct {
	// Added holds entries whose key is absent from the older version.
	Added []rbtree.Entry[K, V]
	// Changed holds entries whose key exists in both with a different value,
	// carrying the newer value.
	Changed []rbtree.Entry[K, V]
	// Removed holds entries of the older version missing from the newer one.
	// Apply only adds keys, so removals come from Replace or from comparing
	// a later version with an earlier one.
	Removed []rbtree.Entry[K, V]
}

// IsEmpty reports whether the two versions hold the same entries.
func (d Delta[K, V]) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// Diff compares version from with version to. Entries appear in key order.
func Diff[K any, V comparable](s *Store[K, V], from, to int) (Delta[K, V], error) {
	older, err := s.At(from)
	if err != nil {
		return Delta[K, V]{}, err
	}

	newer, err := s.At(to)
	if err != nil {
		return Delta[K, V]{}, err
	}

	return Compare(older, newer), nil
}

// Compare lists the entries of newer that are new or changed relative to
// older, and the entries of older that newer lacks.
func Compare[K any, V comparable](older, newer rbtree.Tree[K, V]) Delta[K, V] {
	var delta Delta[K, V]

	for key, value := range newer.Ascend() {
		prev, found := older.Find(key)

		switch {
		case !found:
			delta.Added = append(delta.Added, rbtree.Entry[K, V]{Key: key, Value: value})
		case prev != value:
			delta.Changed = append(delta.Changed, rbtree.Entry[K, V]{Key: key, Value: value})
		}
	}

	for key, value := range older.Ascend() {
		if !newer.Contains(key) {
			delta.Removed = append(delta.Removed, rbtree.Entry[K, V]{Key: key, Value: value})
		}
	}

	return delta
}
