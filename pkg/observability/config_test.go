package observability_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/rbtree/pkg/observability"
)

func TestDefaultConfig_HasSensibleDefaults(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "rbtree", cfg.ServiceName)
	assert.Equal(t, observability.ModeCLI, cfg.Mode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.InDelta(t, 1.0, cfg.SampleRatio, 0)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Nil(t, cfg.SpanExporter)
	assert.Nil(t, cfg.MetricReader)
	assert.Nil(t, cfg.LogOutput)
	assert.False(t, cfg.Verbose)
}
