package rbtree //nolint:testpackage // shares helpers with the internal tests.

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digits(keys ...int) Tree[int, string] {
	builder := NewBuilder[int, string](Less[int]())
	for _, key := range keys {
		builder.Insert(key, strconv.Itoa(key))
	}

	return builder.Tree()
}

func TestFoldOrder(t *testing.T) {
	t.Parallel()

	tree := digits(5, 2, 8, 1, 9, 3)
	concat := func(acc string, _ int, value string) string { return acc + value }

	assert.Equal(t, "123589", Fold(tree, "", concat))
	assert.Equal(t, "985321", RevFold(tree, "", concat))
	assert.Equal(t, "init", Fold(intTree(), "init", concat))
}

var errStop = errors.New("stop")

func TestMFoldStopsAtFirstError(t *testing.T) {
	t.Parallel()

	tree := digits(1, 2, 3, 4, 5)

	var visited []int

	sum, err := MFold(tree, 0, func(acc, key int, _ string) (int, error) {
		visited = append(visited, key)
		if key == 3 {
			return acc, errStop
		}

		return acc + key, nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, sum)
	assert.Equal(t, []int{1, 2, 3}, visited)

	sum, err = MFold(tree, 0, func(acc, key int, _ string) (int, error) { return acc + key, nil })
	require.NoError(t, err)
	assert.Equal(t, 15, sum)
}

func TestMFor(t *testing.T) {
	t.Parallel()

	tree := digits(4, 2, 6)

	var seen []string

	require.NoError(t, MFor(tree, func(_ int, value string) error {
		seen = append(seen, value)

		return nil
	}))
	assert.Equal(t, []string{"2", "4", "6"}, seen)

	err := MFor(tree, func(key int, _ string) error {
		if key == 4 {
			return fmt.Errorf("key %d: %w", key, errStop)
		}

		return nil
	})
	assert.ErrorIs(t, err, errStop)
}

// deferred is a lazy effect: nothing runs until the computation is called.
type deferred[R any] func() R

type deferredEffect[R any] struct{}

func (deferredEffect[R]) Pure(value R) deferred[R] {
	return func() R { return value }
}

func (deferredEffect[R]) Bind(m deferred[R], next func(R) deferred[R]) deferred[R] {
	return func() R { return next(m())() }
}

func TestMFoldWithSequencesLazyEffects(t *testing.T) {
	t.Parallel()

	tree := digits(3, 1, 2, 5, 4)

	var log []int

	program := MFoldWith(deferredEffect[int]{}, tree, 0, func(acc, key int, _ string) deferred[int] {
		return func() int {
			log = append(log, key)

			return acc*10 + key
		}
	})

	assert.Empty(t, log, "effects must not run before the program does")
	assert.Equal(t, 12345, program())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, log)
}

// logged is a writer effect carrying a value and an output log.
type logged[R any] struct {
	value R
	lines []string
}

type loggedEffect[R any] struct{}

func (loggedEffect[R]) Pure(value R) logged[R] {
	return logged[R]{value: value}
}

func (loggedEffect[R]) Bind(m logged[R], next func(R) logged[R]) logged[R] {
	out := next(m.value)

	return logged[R]{value: out.value, lines: append(append([]string{}, m.lines...), out.lines...)}
}

func TestMForWithWriterEffect(t *testing.T) {
	t.Parallel()

	tree := digits(2, 1, 3)

	result := MForWith(loggedEffect[Unit]{}, tree, func(key int, value string) logged[Unit] {
		return logged[Unit]{lines: []string{fmt.Sprintf("%d=%s", key, value)}}
	})

	assert.Equal(t, []string{"1=1", "2=2", "3=3"}, result.lines)

	empty := MForWith(loggedEffect[Unit]{}, intTree(), func(int, string) logged[Unit] {
		return logged[Unit]{lines: []string{"never"}}
	})
	assert.Empty(t, empty.lines)
}

func TestAllAnyShortCircuit(t *testing.T) {
	t.Parallel()

	tree := digits(1, 2, 3, 4, 5, 6, 7)

	var visited []int

	allSmall := tree.All(func(key int, _ string) bool {
		visited = append(visited, key)

		return key < 3
	})
	assert.False(t, allSmall)
	assert.Equal(t, []int{1, 2, 3}, visited)

	visited = nil
	anyBig := tree.Any(func(key int, _ string) bool {
		visited = append(visited, key)

		return key > 2
	})
	assert.True(t, anyBig)
	assert.Equal(t, []int{1, 2, 3}, visited)

	assert.True(t, intTree().All(func(int, string) bool { return false }))
	assert.False(t, intTree().Any(func(int, string) bool { return true }))
}

func TestAnyIsDualOfAll(t *testing.T) {
	t.Parallel()

	tree := digits(10, 20, 30, 40)
	preds := []func(int, string) bool{
		func(key int, _ string) bool { return key > 25 },
		func(key int, _ string) bool { return key > 100 },
		func(key int, _ string) bool { return key%10 == 0 },
		func(_ int, value string) bool { return value == "20" },
	}

	for idx, pred := range preds {
		negated := func(key int, value string) bool { return !pred(key, value) }
		assert.Equal(t, !tree.All(negated), tree.Any(pred), "predicate %d", idx)
	}
}

func TestAscendDescend(t *testing.T) {
	t.Parallel()

	tree := digits(3, 1, 4, 5, 9, 2, 6)

	var ascending, descending []int

	for key := range tree.Ascend() {
		ascending = append(ascending, key)
	}

	for key, value := range tree.Descend() {
		assert.Equal(t, strconv.Itoa(key), value)

		descending = append(descending, key)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 9}, ascending)
	assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1}, descending)

	var firstTwo []int

	for key := range tree.Ascend() {
		if len(firstTwo) == 2 {
			break
		}

		firstTwo = append(firstTwo, key)
	}

	assert.Equal(t, []int{1, 2}, firstTwo)
}
