package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/rbtree/pkg/config"
	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
)

var (
	// ErrUnknownOrder is returned for an order name other than lexical, numeric or fold.
	ErrUnknownOrder = errors.New("unknown key order")
	// ErrNotNumeric is returned when numeric order meets a key that is not a number.
	ErrNotNumeric = errors.New("key is not a number")
)

// Comparator returns the key order named by mode.
//
// Numeric order compares keys as floating point numbers, so "1" and "1.0"
// are the same key. Fold order ignores case, so "Go" and "go" are the same
// key. In both cases the key inserted last is the one that is kept.
func Comparator(mode string) (rbtree.LessFunc[string], error) {
	switch mode {
	case config.OrderLexical:
		return rbtree.Less[string](), nil
	case config.OrderNumeric:
		return numericLess, nil
	case config.OrderFold:
		return foldLess, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, mode)
	}
}

// numericLess orders keys by value. Keys must have passed validateKeys.
func numericLess(a, b string) bool {
	x, _ := strconv.ParseFloat(a, 64)
	y, _ := strconv.ParseFloat(b, 64)

	return x < y
}

func foldLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// validateKeys rejects keys the order cannot compare. NaN parses as a float
// but is unordered against every number, so it is refused too.
func validateKeys(mode string, entries []rbtree.Entry[string, string]) error {
	if mode != config.OrderNumeric {
		return nil
	}

	for _, entry := range entries {
		x, err := strconv.ParseFloat(entry.Key, 64)
		if err != nil || math.IsNaN(x) {
			return fmt.Errorf("%w: %q", ErrNotNumeric, entry.Key)
		}
	}

	return nil
}
