package rbtree

import "iter"

// Fold accumulates f over the elements in ascending key order.
func Fold[K, V, R any](tree Tree[K, V], init R, f func(acc R, key K, value V) R) R {
	return foldNode(tree.root, init, f)
}

func foldNode[K, V, R any](nd *node[K, V], acc R, f func(R, K, V) R) R {
	if nd == nil {
		return acc
	}

	acc = foldNode(nd.left, acc, f)
	acc = f(acc, nd.key, nd.value)

	return foldNode(nd.right, acc, f)
}

// RevFold accumulates f over the elements in descending key order.
func RevFold[K, V, R any](tree Tree[K, V], init R, f func(acc R, key K, value V) R) R {
	return revFoldNode(tree.root, init, f)
}

func revFoldNode[K, V, R any](nd *node[K, V], acc R, f func(R, K, V) R) R {
	if nd == nil {
		return acc
	}

	acc = revFoldNode(nd.right, acc, f)
	acc = f(acc, nd.key, nd.value)

	return revFoldNode(nd.left, acc, f)
}

// MFold is Fold for a step that can fail. Steps run one after another in
// ascending order and the first error stops the traversal.
func MFold[K, V, R any](tree Tree[K, V], init R, f func(acc R, key K, value V) (R, error)) (R, error) {
	return mfoldNode(tree.root, init, f)
}

func mfoldNode[K, V, R any](nd *node[K, V], acc R, f func(R, K, V) (R, error)) (R, error) {
	if nd == nil {
		return acc, nil
	}

	acc, err := mfoldNode(nd.left, acc, f)
	if err != nil {
		return acc, err
	}

	acc, err = f(acc, nd.key, nd.value)
	if err != nil {
		return acc, err
	}

	return mfoldNode(nd.right, acc, f)
}

// MFor runs f on every element in ascending order and stops at the first error.
func MFor[K, V any](tree Tree[K, V], f func(key K, value V) error) error {
	_, err := MFold(tree, Unit{}, func(_ Unit, key K, value V) (Unit, error) {
		return Unit{}, f(key, value)
	})

	return err
}

// Effect supplies the two primitives needed to sequence effectful steps. M is
// the effectful computation of an R: Pure lifts a plain value and Bind runs m
// then passes its result to next.
type Effect[M, R any] interface {
	Pure(value R) M
	Bind(m M, next func(R) M) M
}

// MFoldWith folds f over the elements in ascending order inside eff. Each
// step is bound to the previous one, so the effect decides when and whether
// later steps run; the traversal itself never reorders or interleaves them.
func MFoldWith[K, V, R, M any](eff Effect[M, R], tree Tree[K, V], init R, f func(acc R, key K, value V) M) M {
	return mfoldWith(eff, tree.root, init, f)
}

func mfoldWith[K, V, R, M any](eff Effect[M, R], nd *node[K, V], acc R, f func(R, K, V) M) M {
	if nd == nil {
		return eff.Pure(acc)
	}

	return eff.Bind(mfoldWith(eff, nd.left, acc, f), func(afterLeft R) M {
		return eff.Bind(f(afterLeft, nd.key, nd.value), func(afterNode R) M {
			return mfoldWith(eff, nd.right, afterNode, f)
		})
	})
}

// MForWith runs f on every element in ascending order inside eff.
func MForWith[K, V, M any](eff Effect[M, Unit], tree Tree[K, V], f func(key K, value V) M) M {
	return MFoldWith(eff, tree, Unit{}, func(_ Unit, key K, value V) M {
		return f(key, value)
	})
}

// All reports whether pred holds for every element. It stops at the first
// failure, visiting the left subtree, then the node, then the right subtree.
// An empty tree satisfies All.
func (tree Tree[K, V]) All(pred func(key K, value V) bool) bool {
	return allNode(tree.root, pred)
}

func allNode[K, V any](nd *node[K, V], pred func(K, V) bool) bool {
	if nd == nil {
		return true
	}

	return allNode(nd.left, pred) && pred(nd.key, nd.value) && allNode(nd.right, pred)
}

// Any reports whether pred holds for some element, stopping at the first
// success. An empty tree never satisfies Any.
func (tree Tree[K, V]) Any(pred func(key K, value V) bool) bool {
	return anyNode(tree.root, pred)
}

func anyNode[K, V any](nd *node[K, V], pred func(K, V) bool) bool {
	if nd == nil {
		return false
	}

	return anyNode(nd.left, pred) || pred(nd.key, nd.value) || anyNode(nd.right, pred)
}

// Ascend returns an iterator over the elements in ascending key order.
func (tree Tree[K, V]) Ascend() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		ascend(tree.root, yield)
	}
}

func ascend[K, V any](nd *node[K, V], yield func(K, V) bool) bool {
	if nd == nil {
		return true
	}

	return ascend(nd.left, yield) && yield(nd.key, nd.value) && ascend(nd.right, yield)
}

// Descend returns an iterator over the elements in descending key order.
func (tree Tree[K, V]) Descend() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		descend(tree.root, yield)
	}
}

func descend[K, V any](nd *node[K, V], yield func(K, V) bool) bool {
	if nd == nil {
		return true
	}

	return descend(nd.right, yield) && yield(nd.key, nd.value) && descend(nd.left, yield)
}
