package rbtree

// ins inserts key/value below nd and reports whether the key was new.
//
// A red branch never rebalances: its children were black before the call, so
// a red-red pair created below it is left for the nearest black ancestor. A
// black branch rebalances only when the child it descended into was red
// before the call, the one place where a double red can surface.
func ins[K, V any](less LessFunc[K], own *owner, nd *node[K, V], key K, value V) (*node[K, V], bool) {
	if nd == nil {
		return &node[K, V]{color: Red, key: key, value: value, owner: own}, true
	}

	switch {
	case less(key, nd.key):
		wasRed := isRed(nd.left)
		left, added := ins(less, own, nd.left, key, value)

		if nd.color == Black && wasRed {
			return balance1(own, nd, left, nd.key, nd.value, nd.right), added
		}

		return branch(own, nd, nd.color, left, nd.key, nd.value, nd.right), added
	case less(nd.key, key):
		wasRed := isRed(nd.right)
		right, added := ins(less, own, nd.right, key, value)

		if nd.color == Black && wasRed {
			return balance2(own, nd, nd.left, nd.key, nd.value, right), added
		}

		return branch(own, nd, nd.color, nd.left, nd.key, nd.value, right), added
	default:
		// The newest key replaces the stored one along with the value.
		return branch(own, nd, nd.color, nd.left, key, value, nd.right), false
	}
}

// insertRoot runs ins from root and repaints the result black.
func insertRoot[K, V any](less LessFunc[K], own *owner, root *node[K, V], key K, value V) (*node[K, V], bool) {
	if less == nil {
		panic("rbtree: insert into a tree without a comparator, use New or NewOrdered")
	}

	nd, added := ins(less, own, root, key, value)

	return paintBlack(own, nd), added
}
