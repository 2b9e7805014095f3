package rbtree

import (
	"errors"
	"fmt"
)

// Invariant violations reported by Check.
var (
	ErrOrder       = errors.New("keys out of order")
	ErrRedRed      = errors.New("red branch has a red child")
	ErrBlackHeight = errors.New("unequal black height")
	ErrRedRoot     = errors.New("root is red")
	ErrSize        = errors.New("cached size does not match contents")
)

// Stats describes the shape of a tree.
type Stats struct {
	Len         int `json:"len"`
	Depth       int `json:"depth"`
	MinDepth    int `json:"min_depth"`
	BlackHeight int `json:"black_height"`
	RedNodes    int `json:"red_nodes"`
	BlackNodes  int `json:"black_nodes"`
}

// Check verifies that the tree satisfies the ordering and red-black
// invariants. Trees built only through Insert, Builder and FromList always
// pass; a failure means the comparator is not a strict weak ordering.
func (tree Tree[K, V]) Check() error {
	if isRed(tree.root) {
		return ErrRedRoot
	}

	_, err := checkNode(tree.root)
	if err != nil {
		return err
	}

	count := 0

	var prev K

	for key := range tree.Ascend() {
		if count > 0 && !tree.less(prev, key) {
			return fmt.Errorf("%w: %v is not before %v", ErrOrder, prev, key)
		}

		prev = key
		count++
	}

	if count != tree.size {
		return fmt.Errorf("%w: %d cached, %d found", ErrSize, tree.size, count)
	}

	return nil
}

// checkNode returns the black height below nd.
func checkNode[K, V any](nd *node[K, V]) (int, error) {
	if nd == nil {
		return 0, nil
	}

	if nd.color == Red && (isRed(nd.left) || isRed(nd.right)) {
		return 0, fmt.Errorf("%w: at key %v", ErrRedRed, nd.key)
	}

	leftHeight, err := checkNode(nd.left)
	if err != nil {
		return 0, err
	}

	rightHeight, err := checkNode(nd.right)
	if err != nil {
		return 0, err
	}

	if leftHeight != rightHeight {
		return 0, fmt.Errorf("%w: %d left, %d right at key %v", ErrBlackHeight, leftHeight, rightHeight, nd.key)
	}

	if nd.color == Black {
		leftHeight++
	}

	return leftHeight, nil
}

// BlackHeight returns the number of black branches on the leftmost path.
func (tree Tree[K, V]) BlackHeight() int {
	height := 0

	for nd := tree.root; nd != nil; nd = nd.left {
		if nd.color == Black {
			height++
		}
	}

	return height
}

// Stats returns shape statistics for the tree.
func (tree Tree[K, V]) Stats() Stats {
	stats := Stats{
		Len:         tree.size,
		Depth:       tree.Depth(),
		MinDepth:    tree.DepthFunc(func(left, right int) int { return min(left, right) }),
		BlackHeight: tree.BlackHeight(),
		RedNodes:    0,
		BlackNodes:  0,
	}

	countColors(tree.root, &stats)

	return stats
}

func countColors[K, V any](nd *node[K, V], stats *Stats) {
	if nd == nil {
		return
	}

	if nd.color == Red {
		stats.RedNodes++
	} else {
		stats.BlackNodes++
	}

	countColors(nd.left, stats)
	countColors(nd.right, stats)
}
