package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricInsertsTotal    = "rbtree.inserts.total"
	metricLookupsTotal    = "rbtree.lookups.total"
	metricBuildDuration   = "rbtree.build.duration.seconds"
	metricSnapshotBytes   = "rbtree.snapshot.bytes.total"
	attrSource            = "rbtree.source"
	attrResult            = "rbtree.result"
	attrSnapshotOperation = "snapshot.op"

	resultHit  = "hit"
	resultMiss = "miss"
)

// durationBucketBoundaries covers 10µs to 10s: single batches are fast,
// loading a large input file is not.
var durationBucketBoundaries = []float64{
	0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 10,
}

// TreeMetrics holds the instruments recorded while trees are built and queried.
type TreeMetrics struct {
	insertsTotal  metric.Int64Counter
	lookupsTotal  metric.Int64Counter
	buildDuration metric.Float64Histogram
	snapshotBytes metric.Int64Counter
}

// NewTreeMetrics creates the tree instruments from the given meter. Every
// instrument is attempted; the errors of those that failed are joined.
func NewTreeMetrics(mt metric.Meter) (*TreeMetrics, error) {
	var errs []error

	check := func(name string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", name, err))
		}
	}

	inserts, err := mt.Int64Counter(metricInsertsTotal,
		metric.WithDescription("Entries inserted into trees"), metric.WithUnit("{entry}"))
	check(metricInsertsTotal, err)

	lookups, err := mt.Int64Counter(metricLookupsTotal,
		metric.WithDescription("Key lookups by result"), metric.WithUnit("{lookup}"))
	check(metricLookupsTotal, err)

	build, err := mt.Float64Histogram(metricBuildDuration,
		metric.WithDescription("Time spent building a tree from a batch of entries"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...))
	check(metricBuildDuration, err)

	snapshots, err := mt.Int64Counter(metricSnapshotBytes,
		metric.WithDescription("Bytes written or read as snapshots"), metric.WithUnit("By"))
	check(metricSnapshotBytes, err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &TreeMetrics{
		insertsTotal:  inserts,
		lookupsTotal:  lookups,
		buildDuration: build,
		snapshotBytes: snapshots,
	}, nil
}

// RecordBuild records a batch of inserts from source and how long it took.
func (tm *TreeMetrics) RecordBuild(ctx context.Context, source string, inserted int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(attrSource, source))

	tm.insertsTotal.Add(ctx, int64(inserted), attrs)
	tm.buildDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordLookup counts one lookup as a hit or a miss.
func (tm *TreeMetrics) RecordLookup(ctx context.Context, found bool) {
	result := resultMiss
	if found {
		result = resultHit
	}

	tm.lookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordSnapshot adds the size of a snapshot file that was saved or loaded.
func (tm *TreeMetrics) RecordSnapshot(ctx context.Context, op string, size int64) {
	tm.snapshotBytes.Add(ctx, size, metric.WithAttributes(attribute.String(attrSnapshotOperation, op)))
}
