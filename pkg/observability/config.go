// Package observability provides OpenTelemetry tracing, metrics and
// structured logging for the rbtree command and the history store.
package observability

import (
	"io"
	"log/slog"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Sumatoshi-tech/rbtree/pkg/config"
)

// AppMode identifies how the tree code is being run.
type AppMode string

const (
	// ModeCLI is the rbtree command.
	ModeCLI AppMode = "cli"
	// ModeEmbedded is a host program using the packages as a library.
	ModeEmbedded AppMode = "embedded"
)

const (
	defaultServiceName     = "rbtree"
	defaultShutdownTimeout = 5 * time.Second
)

// Config describes where telemetry goes and how logs look.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Mode           AppMode

	// OTLPEndpoint is the OTLP gRPC collector address, e.g. "localhost:4317".
	OTLPEndpoint string
	OTLPHeaders  map[string]string
	OTLPInsecure bool

	// SpanExporter and MetricReader let a host program route telemetry
	// somewhere other than OTLP. They take precedence over OTLPEndpoint.
	// With neither set and no endpoint, tracing and metrics are no-ops.
	SpanExporter sdktrace.SpanExporter
	MetricReader sdkmetric.Reader

	// SampleRatio is the fraction of root spans kept, in [0, 1].
	SampleRatio float64

	// Verbose keeps every span and logs attributes the span filter drops.
	Verbose bool

	LogLevel slog.Level
	LogJSON  bool

	// LogOutput receives log records. Nil means os.Stderr.
	LogOutput io.Writer

	// ShutdownTimeout bounds the final flush.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config that exports nothing and logs text at info.
func DefaultConfig() Config {
	return Config{
		ServiceName:     defaultServiceName,
		Mode:            ModeCLI,
		SampleRatio:     config.DefaultSampleRatio,
		LogLevel:        slog.LevelInfo,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// FromSettings derives the telemetry setup from loaded command settings.
func FromSettings(settings *config.Config, serviceVersion string) Config {
	cfg := DefaultConfig()

	cfg.ServiceVersion = serviceVersion
	cfg.Environment = settings.Observability.Environment
	cfg.OTLPEndpoint = settings.Observability.OTLPEndpoint
	cfg.OTLPHeaders = ParseOTLPHeaders(settings.Observability.OTLPHeaders)
	cfg.OTLPInsecure = settings.Observability.OTLPInsecure
	cfg.SampleRatio = settings.Observability.SampleRatio
	cfg.LogLevel = settings.Logging.SlogLevel()
	cfg.LogJSON = settings.Logging.JSON()

	return cfg
}
