package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/rbtree/pkg/observability"
)

func newFilteredProvider(logger *slog.Logger) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	filter := observability.NewAttributeFilter(sdktrace.NewSimpleSpanProcessor(exporter), logger)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(filter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return tp, exporter
}

func TestAttributeFilter_AllowsKnownPrefixes(t *testing.T) {
	t.Parallel()

	tp, exporter := newFilteredProvider(nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(
		attribute.Int("rbtree.len", 42),
		attribute.String("snapshot.codec", "json"),
		attribute.Int("history.version", 3),
		attribute.String("cli.command", "stats"),
		attribute.String("error.type", "decode"),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := spanAttrMap(spans[0])
	assert.Equal(t, int64(42), attrs["rbtree.len"])
	assert.Equal(t, "json", attrs["snapshot.codec"])
	assert.Equal(t, int64(3), attrs["history.version"])
	assert.Equal(t, "stats", attrs["cli.command"])
	assert.Equal(t, "decode", attrs["error.type"])
}

func TestAttributeFilter_BlocksTreeContents(t *testing.T) {
	t.Parallel()

	tp, exporter := newFilteredProvider(nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(
		attribute.String("rbtree.key", "alice@example.com"),
		attribute.String("rbtree.value", "secret"),
		attribute.String("rbtree.entry", "alice=secret"),
		attribute.String("user.id", "12345"),
		attribute.Int("rbtree.depth", 4),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := spanAttrMap(spans[0])
	assert.NotContains(t, attrs, "rbtree.key")
	assert.NotContains(t, attrs, "rbtree.value")
	assert.NotContains(t, attrs, "rbtree.entry")
	assert.NotContains(t, attrs, "user.id")
	assert.Equal(t, int64(4), attrs["rbtree.depth"])
}

func TestAttributeFilter_WarnsWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	tp, _ := newFilteredProvider(logger)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(attribute.String("rbtree.key", "k"))
	span.End()

	assert.Contains(t, buf.String(), "rbtree.key")
	assert.Contains(t, buf.String(), "blocked")
}

func TestAttributeFilter_ShutdownAndFlush(t *testing.T) {
	t.Parallel()

	tp, _ := newFilteredProvider(nil)

	require.NoError(t, tp.ForceFlush(context.Background()))
	require.NoError(t, tp.Shutdown(context.Background()))
}

// spanAttrMap converts a span's attributes into a map for easy assertion.
func spanAttrMap(s tracetest.SpanStub) map[string]any {
	m := make(map[string]any, len(s.Attributes))
	for _, a := range s.Attributes {
		m[string(a.Key)] = a.Value.AsInterface()
	}

	return m
}
