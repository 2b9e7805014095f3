package rbtree

// owner is the exclusivity token of a Builder. A node may be overwritten in
// place only by the builder whose live token it carries. The struct is not
// zero-sized so that every token has a distinct address.
type owner struct {
	_ byte
}

// node is a branch of the tree. A nil *node is the empty Leaf.
type node[K, V any] struct {
	left, right *node[K, V]

	// Token of the builder that allocated the node, nil for nodes made by the
	// persistent Insert path.
	owner *owner

	key   K
	value V
	color Color
}

func isRed[K, V any](nd *node[K, V]) bool {
	return nd != nil && nd.color == Red
}

// branch returns a branch holding the given fields. When own is a live token
// and reuse carries it, reuse is overwritten in place; otherwise a new branch
// stamped with own is allocated. Arguments are evaluated before reuse is
// touched, so they may safely read reuse's old fields.
func branch[K, V any](own *owner, reuse *node[K, V], color Color, left *node[K, V], key K, value V, right *node[K, V]) *node[K, V] {
	nd := reuse
	if own == nil || nd == nil || nd.owner != own {
		nd = &node[K, V]{owner: own}
	}

	nd.color = color
	nd.left = left
	nd.key = key
	nd.value = value
	nd.right = right

	return nd
}

// paintBlack returns nd with a black root, copying it unless own holds it.
func paintBlack[K, V any](own *owner, nd *node[K, V]) *node[K, V] {
	if nd == nil || nd.color == Black {
		return nd
	}

	return branch(own, nd, Black, nd.left, nd.key, nd.value, nd.right)
}
