// Package history keeps every committed version of a tree. Versions share
// structure, so keeping old ones costs only the nodes each batch copied.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Sumatoshi-tech/rbtree/pkg/observability"
	"github.com/Sumatoshi-tech/rbtree/pkg/persist"
	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
	"github.com/Sumatoshi-tech/rbtree/pkg/snapshot"
)

// metricSource labels inserts made through a Store.
const metricSource = "history"

// ErrUnknownVersion is returned for a version that was never committed.
var ErrUnknownVersion = errors.New("unknown version")

// Option configures a Store.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *observability.TreeMetrics
}

// WithLogger sets the logger that receives commit records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records inserts and lookups on tm.
func WithMetrics(tm *observability.TreeMetrics) Option {
	return func(o *options) { o.metrics = tm }
}

// Store is a sequence of tree versions. Version 0 is the empty tree and each
// Apply commits one more. Store is safe for concurrent use; the trees it
// returns are immutable.
type Store[K, V any] struct {
	mu       sync.RWMutex
	versions []rbtree.Tree[K, V]
	logger   *slog.Logger
	metrics  *observability.TreeMetrics
}

// New creates a store whose trees are ordered by less.
func New[K, V any](less rbtree.LessFunc[K], opts ...Option) *Store[K, V] {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[K, V]{
		versions: []rbtree.Tree[K, V]{rbtree.New[K, V](less)},
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// Apply inserts entries into a copy of the head and commits it as a new
// version, which it returns. Later entries win over earlier ones with an
// equivalent key.
func (s *Store[K, V]) Apply(ctx context.Context, entries ...rbtree.Entry[K, V]) int {
	return s.commit(ctx, false, entries)
}

// Replace commits a version holding only entries, as if they were applied
// to an empty store. Earlier versions are unaffected.
func (s *Store[K, V]) Replace(ctx context.Context, entries ...rbtree.Entry[K, V]) int {
	return s.commit(ctx, true, entries)
}

func (s *Store[K, V]) commit(ctx context.Context, fresh bool, entries []rbtree.Entry[K, V]) int {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.versions[len(s.versions)-1]
	if fresh {
		base = s.versions[0]
	}

	builder := base.Builder()

	added := 0

	for _, entry := range entries {
		if builder.Insert(entry.Key, entry.Value) {
			added++
		}
	}

	s.versions = append(s.versions, builder.Tree())
	version := len(s.versions) - 1
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordBuild(ctx, metricSource, len(entries), elapsed)
	}

	s.logger.DebugContext(ctx, "version committed",
		"version", version,
		"replace", fresh,
		"entries", len(entries),
		"added", added,
		"len", builder.Len(),
		"elapsed", elapsed,
	)

	return version
}

// Head returns the latest version.
func (s *Store[K, V]) Head() rbtree.Tree[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.versions[len(s.versions)-1]
}

// HeadVersion returns the number of the latest version.
func (s *Store[K, V]) HeadVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.versions) - 1
}

// Versions returns the number of committed versions, including version 0.
func (s *Store[K, V]) Versions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.versions)
}

// At returns the tree committed as version.
func (s *Store[K, V]) At(version int) (rbtree.Tree[K, V], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version < 0 || version >= len(s.versions) {
		return rbtree.Tree[K, V]{}, fmt.Errorf("%w: %d (have 0..%d)", ErrUnknownVersion, version, len(s.versions)-1)
	}

	return s.versions[version], nil
}

// Lookup finds key in the head.
func (s *Store[K, V]) Lookup(ctx context.Context, key K) (V, bool) {
	value, found := s.Head().Find(key)

	if s.metrics != nil {
		s.metrics.RecordLookup(ctx, found)
	}

	return value, found
}

// Save writes the head to dir as a snapshot named name.
func (s *Store[K, V]) Save(ctx context.Context, dir, name string, codec persist.Codec) error {
	s.mu.RLock()
	version := len(s.versions) - 1
	head := s.versions[version]
	s.mu.RUnlock()

	err := snapshot.Save(dir, name, codec, head)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "snapshot saved",
		"name", name, "version", version, "len", head.Len(), "codec", codec.Extension())

	return nil
}

// Restore loads a snapshot and applies its entries to the head as a new
// version.
func (s *Store[K, V]) Restore(ctx context.Context, dir, name string, codec persist.Codec) (int, error) {
	doc, err := snapshot.LoadDocument[K, V](dir, name, codec, s.Head().Comparator())
	if err != nil {
		return 0, err
	}

	return s.Apply(ctx, doc.Entries...), nil
}
