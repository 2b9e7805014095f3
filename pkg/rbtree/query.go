package rbtree

func (tree Tree[K, V]) findNode(key K) *node[K, V] {
	return lookup(tree.less, tree.root, key)
}

func lookup[K, V any](less LessFunc[K], nd *node[K, V], key K) *node[K, V] {
	if nd == nil {
		return nil
	}

	switch {
	case less(key, nd.key):
		return lookup(less, nd.left, key)
	case less(nd.key, key):
		return lookup(less, nd.right, key)
	default:
		return nd
	}
}

// Find returns the value stored under a key equivalent to key.
func (tree Tree[K, V]) Find(key K) (V, bool) {
	nd := tree.findNode(key)
	if nd == nil {
		var zero V

		return zero, false
	}

	return nd.value, true
}

// FindEntry is like Find but also returns the stored key, which may differ
// from key when the ordering treats distinct values as equivalent.
func (tree Tree[K, V]) FindEntry(key K) (Entry[K, V], bool) {
	nd := tree.findNode(key)
	if nd == nil {
		return Entry[K, V]{}, false
	}

	return Entry[K, V]{Key: nd.key, Value: nd.value}, true
}

// Contains reports whether a key equivalent to key is present.
func (tree Tree[K, V]) Contains(key K) bool {
	return tree.findNode(key) != nil
}

// Min returns the smallest element, or false for an empty tree.
func (tree Tree[K, V]) Min() (Entry[K, V], bool) {
	nd := tree.root
	if nd == nil {
		return Entry[K, V]{}, false
	}

	for nd.left != nil {
		nd = nd.left
	}

	return Entry[K, V]{Key: nd.key, Value: nd.value}, true
}

// Max returns the largest element, or false for an empty tree.
func (tree Tree[K, V]) Max() (Entry[K, V], bool) {
	nd := tree.root
	if nd == nil {
		return Entry[K, V]{}, false
	}

	for nd.right != nil {
		nd = nd.right
	}

	return Entry[K, V]{Key: nd.key, Value: nd.value}, true
}
