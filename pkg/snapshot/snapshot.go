// Package snapshot saves trees to disk and rebuilds them from saved files.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/rbtree/pkg/persist"
	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
)

// FormatVersion is the document layout written by Save.
const FormatVersion = 1

// Sentinel errors returned by Load and Rebuild.
var (
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	ErrCountMismatch     = errors.New("snapshot entry count mismatch")
	ErrUnsorted          = errors.New("snapshot entries out of order")
)

// Document is the on-disk form of a tree: its entries in ascending order.
type Document[K, V any] struct {
	Format  int                  `json:"format"  yaml:"format"`
	Count   int                  `json:"count"   yaml:"count"`
	Entries []rbtree.Entry[K, V] `json:"entries" yaml:"entries"`
}

// NewDocument captures the entries of tree.
func NewDocument[K, V any](tree rbtree.Tree[K, V]) Document[K, V] {
	return Document[K, V]{
		Format:  FormatVersion,
		Count:   tree.Len(),
		Entries: tree.ToList(),
	}
}

// Validate checks the header and that entries are strictly ascending
// under less.
func (doc Document[K, V]) Validate(less rbtree.LessFunc[K]) error {
	if doc.Format != FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, doc.Format)
	}

	if doc.Count != len(doc.Entries) {
		return fmt.Errorf("%w: header says %d, found %d", ErrCountMismatch, doc.Count, len(doc.Entries))
	}

	for i := 1; i < len(doc.Entries); i++ {
		if !less(doc.Entries[i-1].Key, doc.Entries[i].Key) {
			return fmt.Errorf("%w: entry %d", ErrUnsorted, i)
		}
	}

	return nil
}

// Rebuild validates the document against less and builds the tree it
// describes.
func (doc Document[K, V]) Rebuild(less rbtree.LessFunc[K]) (rbtree.Tree[K, V], error) {
	err := doc.Validate(less)
	if err != nil {
		return rbtree.Tree[K, V]{}, err
	}

	return rbtree.FromList(less, doc.Entries), nil
}

// Path returns the file Save writes for name and codec.
func Path(dir, name string, codec persist.Codec) string {
	return persist.StatePath(dir, name, codec)
}

// Save writes tree to dir under name, encoded with codec.
func Save[K, V any](dir, name string, codec persist.Codec, tree rbtree.Tree[K, V]) error {
	doc := NewDocument(tree)

	err := persist.NewPersister[Document[K, V]](name, codec).Save(dir, &doc)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}

	return nil
}

// LoadDocument reads the snapshot saved under name and validates it against
// less without building a tree.
func LoadDocument[K, V any](dir, name string, codec persist.Codec, less rbtree.LessFunc[K]) (Document[K, V], error) {
	doc, err := persist.NewPersister[Document[K, V]](name, codec).Load(dir)
	if err != nil {
		return Document[K, V]{}, fmt.Errorf("load snapshot %s: %w", name, err)
	}

	err = doc.Validate(less)
	if err != nil {
		return Document[K, V]{}, fmt.Errorf("load snapshot %s: %w", name, err)
	}

	return *doc, nil
}

// Load reads the snapshot saved under name and rebuilds it with less.
func Load[K, V any](dir, name string, codec persist.Codec, less rbtree.LessFunc[K]) (rbtree.Tree[K, V], error) {
	doc, err := LoadDocument[K, V](dir, name, codec, less)
	if err != nil {
		return rbtree.Tree[K, V]{}, err
	}

	return rbtree.FromList(less, doc.Entries), nil
}
