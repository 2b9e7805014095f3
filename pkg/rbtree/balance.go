package rbtree

// balance1 rebuilds a black branch (key, value, right) whose new left child
// left is red and may itself have a red child. The left-left and left-right
// shapes are rotated into a red branch with two black children; any remaining
// red-red pair is one level up, under a red parent, and is repaired by the
// next black ancestor. Without a violation the branch is rebuilt black with
// left kept red. grand is the branch being replaced and may be reused by own.
func balance1[K, V any](
	own *owner, grand, left *node[K, V], key K, value V, right *node[K, V],
) *node[K, V] {
	switch {
	case isRed(left.left):
		// Left-left.
		outer := left.left
		newLeft := branch(own, outer, Black, outer.left, outer.key, outer.value, outer.right)
		newRight := branch(own, grand, Black, left.right, key, value, right)

		return branch(own, left, Red, newLeft, left.key, left.value, newRight)
	case isRed(left.right):
		// Left-right.
		inner := left.right
		newLeft := branch(own, left, Black, left.left, left.key, left.value, inner.left)
		newRight := branch(own, grand, Black, inner.right, key, value, right)

		return branch(own, inner, Red, newLeft, inner.key, inner.value, newRight)
	default:
		return branch(own, grand, Black, left, key, value, right)
	}
}

// balance2 mirrors balance1 for a red right child: right-right and right-left.
func balance2[K, V any](
	own *owner, grand, left *node[K, V], key K, value V, right *node[K, V],
) *node[K, V] {
	switch {
	case isRed(right.right):
		// Right-right.
		outer := right.right
		newLeft := branch(own, grand, Black, left, key, value, right.left)
		newRight := branch(own, outer, Black, outer.left, outer.key, outer.value, outer.right)

		return branch(own, right, Red, newLeft, right.key, right.value, newRight)
	case isRed(right.left):
		// Right-left.
		inner := right.left
		newLeft := branch(own, grand, Black, left, key, value, inner.left)
		newRight := branch(own, right, Black, inner.right, right.key, right.value, right.right)

		return branch(own, inner, Red, newLeft, inner.key, inner.value, newRight)
	default:
		return branch(own, grand, Black, left, key, value, right)
	}
}
