package rbtree //nolint:testpackage // tests inspect node ownership.

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMatchesPersistentInsert(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	persistent := NewOrdered[int, int]()
	builder := NewBuilder[int, int](Less[int]())

	for step := range 3000 {
		key := rng.Intn(500)
		persistent = persistent.Insert(key, step)
		builder.Insert(key, step)
	}

	built := requireValid(t, builder.Tree())
	assert.Equal(t, persistent.ToList(), built.ToList())
	assert.Equal(t, persistent.Len(), builder.Len())
}

func TestBuilderInsertReportsNewKeys(t *testing.T) {
	t.Parallel()

	builder := NewBuilder[string, int](foldLess)
	assert.True(t, builder.Insert("a", 1))
	assert.True(t, builder.Insert("b", 2))
	assert.False(t, builder.Insert("A", 3))
	assert.Equal(t, 2, builder.Len())

	entry, found := builder.Tree().FindEntry("a")
	require.True(t, found)
	assert.Equal(t, Entry[string, int]{Key: "A", Value: 3}, entry)
}

func TestBuilderMutatesOwnedNodesInPlace(t *testing.T) {
	t.Parallel()

	builder := NewBuilder[int, string](Less[int]())
	for key := range 32 {
		builder.Insert(key, "old")
	}

	root := builder.tree.root
	builder.Insert(0, "new")

	// Replacing a value rewrites the owned path instead of copying it.
	assert.Same(t, root, builder.tree.root)
	assert.Equal(t, builder.own, root.owner)
}

func TestBuilderNeverMutatesPublishedTrees(t *testing.T) {
	t.Parallel()

	builder := NewBuilder[int, string](Less[int]())
	for key := range 100 {
		builder.Insert(key, "first")
	}

	published := builder.Tree()
	snapshot := published.ToList()
	oldRoot := published.root

	for key := range 200 {
		builder.Insert(key, "second")
	}

	requireValid(t, published)
	assert.Equal(t, snapshot, published.ToList())
	assert.Same(t, oldRoot, published.root)
	assert.True(t, published.All(func(_ int, value string) bool { return value == "first" }))

	second := requireValid(t, builder.Tree())
	assert.Equal(t, 200, second.Len())
	assert.True(t, second.All(func(_ int, value string) bool { return value == "second" }))
	assert.NotSame(t, oldRoot, second.root)
}

func TestTreeBuilderLeavesSourceUntouched(t *testing.T) {
	t.Parallel()

	source := FromList(Less[int](), []Entry[int, string]{{Key: 1, Value: "a"}, {Key: 2, Value: "b"}})
	builder := source.Builder()
	builder.Insert(1, "z")
	builder.Insert(3, "c")

	value, _ := source.Find(1)
	assert.Equal(t, "a", value)
	assert.False(t, source.Contains(3))
	assert.Equal(t, 2, source.Len())

	derived := builder.Tree()
	value, _ = derived.Find(1)
	assert.Equal(t, "z", value)
	assert.Equal(t, 3, derived.Len())
}

func TestPersistentInsertAllocatesUnownedNodes(t *testing.T) {
	t.Parallel()

	tree := NewOrdered[int, int]()
	for key := range 16 {
		tree = tree.Insert(key, key)
	}

	assert.True(t, Fold(tree, true, func(acc bool, key, _ int) bool {
		return acc && tree.findNode(key).owner == nil
	}))
}

func BenchmarkPersistentInsert(b *testing.B) {
	for b.Loop() {
		tree := NewOrdered[int, int]()
		for key := range 1024 {
			tree = tree.Insert(key, key)
		}
	}
}

func BenchmarkBuilderInsert(b *testing.B) {
	for b.Loop() {
		builder := NewBuilder[int, int](Less[int]())
		for key := range 1024 {
			builder.Insert(key, key)
		}

		_ = builder.Tree()
	}
}
