package rbtree

// Builder accumulates inserts into a tree, overwriting nodes in place when it
// is their only owner.
//
// A node is owned by a builder when the builder allocated it after the last
// call to Tree. Nodes reachable from any published Tree are never owned, so
// the in-place path cannot be observed: a Builder produces exactly the trees
// the equivalent sequence of Tree.Insert calls would, at a fraction of the
// allocations.
type Builder[K, V any] struct {
	tree Tree[K, V]
	own  *owner
}

// NewBuilder returns a Builder for an empty tree ordered by less.
func NewBuilder[K, V any](less LessFunc[K]) *Builder[K, V] {
	return New[K, V](less).Builder()
}

// Insert maps key to value, replacing an equivalent key and its value.
// It reports whether the key was new.
func (builder *Builder[K, V]) Insert(key K, value V) bool {
	root, added := insertRoot(builder.tree.less, builder.own, builder.tree.root, key, value)

	builder.tree.root = root
	if added {
		builder.tree.size++
	}

	return added
}

// InsertEntries inserts each entry in order; later entries win on equivalent keys.
func (builder *Builder[K, V]) InsertEntries(entries ...Entry[K, V]) {
	for _, entry := range entries {
		builder.Insert(entry.Key, entry.Value)
	}
}

// Len returns the number of elements inserted so far.
func (builder *Builder[K, V]) Len() int {
	return builder.tree.size
}

// Tree publishes the current contents as an immutable Tree. The builder stays
// usable; its ownership of the published nodes is given up, so later inserts
// copy them instead of writing through.
func (builder *Builder[K, V]) Tree() Tree[K, V] {
	builder.own = new(owner)

	return builder.tree
}
