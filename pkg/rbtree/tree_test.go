package rbtree //nolint:testpackage // tests inspect node colors and ownership.

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intTree() Tree[int, string] {
	return NewOrdered[int, string]()
}

func foldLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// requireValid checks the red-black invariants and returns the tree for chaining.
func requireValid[K, V any](tb testing.TB, tree Tree[K, V]) Tree[K, V] {
	tb.Helper()
	require.NoError(tb, tree.Check())

	return tree
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	tree := intTree()
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.Depth())
	assert.Empty(t, tree.ToList())

	_, found := tree.Find(1)
	assert.False(t, found)
	assert.False(t, tree.Contains(1))

	_, found = tree.Min()
	assert.False(t, found)

	_, found = tree.Max()
	assert.False(t, found)
	assert.NoError(t, tree.Check())
}

func TestZeroTreeIsReadable(t *testing.T) {
	t.Parallel()

	var tree Tree[string, int]

	assert.True(t, tree.IsEmpty())
	assert.False(t, tree.Contains("a"))
	assert.NoError(t, tree.Check())
	assert.Equal(t, "rbmap_of []", tree.String())
	assert.Panics(t, func() {
		tree.Insert("a", 1)
	})
}

func TestInsertAscendingSeven(t *testing.T) {
	t.Parallel()

	tree := intTree()
	for key := 1; key <= 7; key++ {
		tree = requireValid(t, tree.Insert(key, ""))
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, tree.Keys())
	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, Black, tree.root.color)
	assert.Equal(t, 4, tree.root.key)
	assert.Equal(t, Stats{Len: 7, Depth: 3, MinDepth: 3, BlackHeight: 3, RedNodes: 0, BlackNodes: 7}, tree.Stats())
}

func TestFromListLastWriteWins(t *testing.T) {
	t.Parallel()

	tree := requireValid(t, FromList(Less[int](), []Entry[int, string]{
		{Key: 1, Value: "a"},
		{Key: 1, Value: "b"},
		{Key: 2, Value: "c"},
	}))

	value, found := tree.Find(1)
	require.True(t, found)
	assert.Equal(t, "b", value)

	value, found = tree.Find(2)
	require.True(t, found)
	assert.Equal(t, "c", value)
	assert.Len(t, tree.ToList(), 2)
	assert.Equal(t, 2, tree.Len())
}

func TestFindAfterInsert(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	tree := intTree()

	for range 500 {
		key := rng.Intn(200)
		value := strings.Repeat("x", rng.Intn(5))
		next := tree.Insert(key, value)

		got, found := next.Find(key)
		require.True(t, found)
		assert.Equal(t, value, got)

		// Other keys keep their previous lookup result.
		other := rng.Intn(200)
		if other != key {
			oldValue, oldFound := tree.Find(other)
			newValue, newFound := next.Find(other)
			assert.Equal(t, oldFound, newFound)
			assert.Equal(t, oldValue, newValue)
		}

		tree = next
	}

	requireValid(t, tree)
}

func TestReinsertReplacesKey(t *testing.T) {
	t.Parallel()

	tree := New[string, int](foldLess).
		Insert("Apple", 1).
		Insert("banana", 2).
		Insert("APPLE", 3)

	assert.Equal(t, 2, tree.Len())

	entry, found := tree.FindEntry("apple")
	require.True(t, found)
	assert.Equal(t, "APPLE", entry.Key)
	assert.Equal(t, 3, entry.Value)
	assert.Equal(t, []string{"APPLE", "banana"}, tree.Keys())
}

func TestInsertIsPersistent(t *testing.T) {
	t.Parallel()

	versions := []Tree[int, string]{intTree()}

	for key := range 64 {
		last := versions[len(versions)-1]
		versions = append(versions, last.Insert(key*7%64, "v"))
	}

	// Overwrite every key in a final version.
	last := versions[len(versions)-1]
	for key := range 64 {
		last = last.Insert(key, "w")
	}

	for idx, version := range versions {
		requireValid(t, version)
		assert.Equal(t, idx, version.Len())
		assert.True(t, version.All(func(_ int, value string) bool { return value == "v" }))
	}

	assert.True(t, last.All(func(_ int, value string) bool { return value == "w" }))
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	tree := FromList(Less[int](), []Entry[int, string]{
		{Key: 5, Value: "five"}, {Key: 1, Value: "one"}, {Key: 9, Value: "nine"}, {Key: 3, Value: "three"},
	})

	minEntry, found := tree.Min()
	require.True(t, found)
	assert.Equal(t, Entry[int, string]{Key: 1, Value: "one"}, minEntry)

	maxEntry, found := tree.Max()
	require.True(t, found)
	assert.Equal(t, Entry[int, string]{Key: 9, Value: "nine"}, maxEntry)
}

func TestCustomComparatorDescending(t *testing.T) {
	t.Parallel()

	tree := New[int, Unit](func(a, b int) bool { return a > b })
	for _, key := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		tree = tree.Insert(key, Unit{})
	}

	requireValid(t, tree)
	assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1}, tree.Keys())
}

func TestColorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "red", Red.String())
	assert.Equal(t, "black", Black.String())
}

func TestEquivalent(t *testing.T) {
	t.Parallel()

	assert.True(t, Equivalent(foldLess, "Go", "gO"))
	assert.False(t, Equivalent(foldLess, "Go", "Rust"))
}

// Randomized tests.

// oracle is a sorted slice model of the tree.
type oracle struct {
	keys   []int
	values map[int]int
}

func newOracle() *oracle {
	return &oracle{keys: make([]int, 0), values: map[int]int{}}
}

func (o *oracle) Insert(key, value int) {
	idx, found := slices.BinarySearch(o.keys, key)
	if !found {
		o.keys = slices.Insert(o.keys, idx, key)
	}

	o.values[key] = value
}

func (o *oracle) Entries() []Entry[int, int] {
	out := make([]Entry[int, int], 0, len(o.keys))
	for _, key := range o.keys {
		out = append(out, Entry[int, int]{Key: key, Value: o.values[key]})
	}

	return out
}

func compareWithOracle(tb testing.TB, orc *oracle, tree Tree[int, int]) {
	tb.Helper()

	require.NoError(tb, tree.Check())
	require.Equal(tb, len(orc.keys), tree.Len())
	require.Equal(tb, orc.Entries(), tree.ToList())
}

func TestRandomized(t *testing.T) {
	t.Parallel()

	const numKeys = 1000

	orc := newOracle()
	tree := NewOrdered[int, int]()
	rng := rand.New(rand.NewSource(0))

	for step := range 5000 {
		op := rng.Int31n(100)
		key := int(rng.Int31n(numKeys))

		switch {
		case op < 60:
			orc.Insert(key, step)
			tree = tree.Insert(key, step)
		case op < 90:
			value, found := tree.Find(key)
			expected, expectedFound := orc.values[key]
			require.Equal(t, expectedFound, found)
			require.Equal(t, expected, value)
		default:
			compareWithOracle(t, orc, tree)
		}
	}

	compareWithOracle(t, orc, tree)
	assert.LessOrEqual(t, tree.Depth(), 2*tree.BlackHeight())
}

func TestRandomizedRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	tree := NewOrdered[int, int]()

	for range 300 {
		tree = tree.Insert(rng.Intn(1000), rng.Int())
	}

	rebuilt := requireValid(t, FromList(tree.Comparator(), tree.ToList()))

	for key := range 1000 {
		want, wantFound := tree.Find(key)
		got, gotFound := rebuilt.Find(key)
		require.Equal(t, wantFound, gotFound)
		require.Equal(t, want, got)
	}
}
