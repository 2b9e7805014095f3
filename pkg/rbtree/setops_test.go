package rbtree //nolint:testpackage // shares helpers with the internal tests.

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubset(t *testing.T) {
	t.Parallel()

	small := digits(2, 4)
	large := digits(1, 2, 3, 4, 5)
	other := digits(2, 6)

	assert.True(t, Subset(small, large))
	assert.False(t, Subset(large, small))
	assert.False(t, Subset(other, large))
	assert.True(t, Subset(intTree(), small))
	assert.True(t, Subset(intTree(), intTree()))
	assert.False(t, Subset(small, intTree()))
}

func TestSubsetIgnoresPayloadTypes(t *testing.T) {
	t.Parallel()

	keys := SetFromList(Less[int](), []int{1, 3})
	values := digits(1, 2, 3)

	assert.True(t, Subset(keys.Tree(), values))
	assert.False(t, Subset(values, keys.Tree()))
}

func TestSubsetShortCircuits(t *testing.T) {
	t.Parallel()

	lookups := 0
	counting := func(a, b int) bool {
		lookups++

		return a < b
	}

	super := New[int, Unit](counting).Insert(100, Unit{})
	lookups = 0

	assert.False(t, Subset(digits(1, 2, 3, 4, 5, 6, 7), super))
	// Only the smallest candidate key is looked up: one comparison sends it left to a leaf.
	assert.Equal(t, 1, lookups)
}

func TestSetEqualMatchesMutualSubset(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))

	for range 200 {
		left := intTree()
		right := intTree()

		for range rng.Intn(6) {
			left = left.Insert(rng.Intn(5), "l")
		}

		for range rng.Intn(6) {
			right = right.Insert(rng.Intn(5), "r")
		}

		mutual := Subset(left, right) && Subset(right, left)
		require.Equal(t, mutual, SetEqual(left, right))
	}

	assert.True(t, SetEqual(digits(3, 1, 2), digits(1, 2, 3)))
	assert.False(t, SetEqual(digits(1, 2), digits(1, 2, 3)))
}

func TestToListFromList(t *testing.T) {
	t.Parallel()

	entries := []Entry[int, string]{
		{Key: 5, Value: "e"}, {Key: 3, Value: "c"}, {Key: 5, Value: "E"}, {Key: 1, Value: "a"}, {Key: 3, Value: "C"},
	}

	tree := requireValid(t, OfList(Less[int](), entries))
	assert.Equal(t, []Entry[int, string]{
		{Key: 1, Value: "a"}, {Key: 3, Value: "C"}, {Key: 5, Value: "E"},
	}, tree.ToList())
	assert.Equal(t, []int{1, 3, 5}, tree.Keys())
	assert.Empty(t, FromList(Less[int](), []Entry[int, string]{}).ToList())
}

func TestDepth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, intTree().Depth())
	assert.Equal(t, 1, digits(1).Depth())
	assert.Equal(t, 2, digits(1, 2).Depth())

	tree := NewOrdered[int, int]()
	for key := range 1023 {
		tree = tree.Insert(key, key)
	}

	// 2*log2(n+1) bounds every red-black tree.
	assert.LessOrEqual(t, tree.Depth(), 20)
	assert.GreaterOrEqual(t, tree.Depth(), 10)

	shortest := tree.DepthFunc(func(left, right int) int { return min(left, right) })
	assert.LessOrEqual(t, shortest, tree.Depth())
	assert.LessOrEqual(t, tree.Depth(), 2*shortest)
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rbmap_of [(1, 1), (2, 2), (3, 3)]", digits(3, 1, 2).String())
	assert.Equal(t, "rbtree_of [a, b]", SetFromList(Less[string](), []string{"b", "a"}).String())
	assert.Equal(t, "rbtree_of []", NewOrderedSet[string]().String())
}
