package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	instrumentationName = "github.com/Sumatoshi-tech/rbtree"
	attrAppMode         = "app.mode"
)

// Providers is the telemetry of one process.
type Providers struct {
	Tracer  trace.Tracer
	Meter   metric.Meter
	Metrics *TreeMetrics
	Logger  *slog.Logger

	// Shutdown flushes pending spans and metrics. Call it once before exit.
	Shutdown func(ctx context.Context) error
}

// Init builds the logger, tracer, meter and tree instruments described by
// cfg and installs the tracer and meter providers as the otel globals.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()
	logger := NewLogger(cfg)

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(cfg)...))
	if err != nil {
		return Providers{}, fmt.Errorf("build otel resource: %w", err)
	}

	var stops []func(context.Context) error

	stopAll := func(stopCtx context.Context) error {
		var errs []error
		for _, stop := range stops {
			errs = append(errs, stop(stopCtx))
		}

		return errors.Join(errs...)
	}

	var tracerProvider trace.TracerProvider = nooptrace.NewTracerProvider()

	spans, err := spanExporter(ctx, cfg)
	if err != nil {
		return Providers{}, err
	}

	if spans != nil {
		var dropLogger *slog.Logger
		if cfg.Verbose {
			dropLogger = logger
		}

		sdkTracer := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler(cfg)),
			sdktrace.WithSpanProcessor(NewAttributeFilter(sdktrace.NewBatchSpanProcessor(spans), dropLogger)),
		)
		tracerProvider = sdkTracer
		stops = append(stops, sdkTracer.Shutdown)
	}

	var meterProvider metric.MeterProvider = noopmetric.NewMeterProvider()

	reader, err := metricReader(ctx, cfg)
	if err != nil {
		return Providers{}, errors.Join(err, stopAll(ctx))
	}

	if reader != nil {
		sdkMeter := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
		meterProvider = sdkMeter
		stops = append(stops, sdkMeter.Shutdown)
	}

	meter := meterProvider.Meter(instrumentationName)

	metrics, err := NewTreeMetrics(meter)
	if err != nil {
		return Providers{}, errors.Join(err, stopAll(ctx))
	}

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return Providers{
		Tracer:  tracerProvider.Tracer(instrumentationName),
		Meter:   meter,
		Metrics: metrics,
		Logger:  logger,
		Shutdown: func(shutdownCtx context.Context) error {
			deadlineCtx, cancel := context.WithTimeout(shutdownCtx, timeout)
			defer cancel()

			err := stopAll(deadlineCtx)
			stops = nil

			return err
		},
	}, nil
}

func resourceAttributes(cfg Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		attribute.String(attrAppMode, string(cfg.Mode)),
	}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}

	return attrs
}

// spanExporter returns the configured exporter, or nil when spans go nowhere.
func spanExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	if cfg.SpanExporter != nil {
		return cfg.SpanExporter, nil
	}

	if cfg.OTLPEndpoint == "" {
		return nil, nil //nolint:nilnil // no exporter is a valid outcome.
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(cfg.OTLPHeaders))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	return exporter, nil
}

// metricReader returns the configured reader, or nil when metrics go nowhere.
func metricReader(ctx context.Context, cfg Config) (sdkmetric.Reader, error) {
	if cfg.MetricReader != nil {
		return cfg.MetricReader, nil
	}

	if cfg.OTLPEndpoint == "" {
		return nil, nil //nolint:nilnil // no reader is a valid outcome.
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		opts = append(opts, otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders))
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	return sdkmetric.NewPeriodicReader(exporter), nil
}

// sampler keeps every span in verbose mode and otherwise samples root spans
// at the configured ratio. Child spans follow their parent.
func sampler(cfg Config) sdktrace.Sampler {
	if cfg.Verbose || cfg.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}

	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
}

// ParseOTLPHeaders parses "key=value,key=value" headers. Pairs without an
// equals sign are skipped; nil is returned when nothing remains.
func ParseOTLPHeaders(raw string) map[string]string {
	var headers map[string]string

	for pair := range strings.SplitSeq(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		if headers == nil {
			headers = make(map[string]string)
		}

		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return headers
}
