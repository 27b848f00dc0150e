package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewAndShutdown(t *testing.T) {
	tel, err := New(context.Background(), "test", NewDefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tel.Registry())

	// Registry gathers without error even before any instrument records.
	_, err = tel.Registry().Gather()
	assert.NoError(t, err)

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestRegistryIncludesGoRuntimeMetrics(t *testing.T) {
	tel, err := New(context.Background(), "test", NewDefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	families, err := tel.Registry().Gather()
	require.NoError(t, err)

	var sawGo bool
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "go_") {
			sawGo = true
			break
		}
	}
	assert.True(t, sawGo, "expected go_* runtime metrics in registry")
}

func TestTracingExportsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	cfg := NewDefaultConfig()
	cfg.Tracing.Enabled = true

	tel, err := New(context.Background(), "test", cfg, zap.NewNop(), WithSpanExporter(exp))
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())
	require.NotNil(t, tel.tracerProvider)

	_, span := otel.Tracer("test").Start(context.Background(), "lookup")
	span.End()

	require.NoError(t, tel.ForceFlush(context.Background()))
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "lookup", spans[0].Name)
}

func TestTracingDisabledLeavesNoTracerProvider(t *testing.T) {
	tel, err := New(context.Background(), "test", NewDefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())
	assert.Nil(t, tel.tracerProvider)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"enabled defaults", func(c *Config) { c.Tracing.Enabled = true }, false},
		{"missing endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Endpoint = ""
		}, true},
		{"bad protocol", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Protocol = "udp"
		}, true},
		{"sample rate out of range", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.SampleRate = 1.5
		}, true},
		{"disabled skips checks", func(c *Config) { c.Tracing.Protocol = "udp" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(1.0).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), newSampler(0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), newSampler(0.25).Description())
}

func TestStripScheme(t *testing.T) {
	assert.Equal(t, "otel.example.com:4318", stripScheme("https://otel.example.com:4318"))
	assert.Equal(t, "localhost:4318", stripScheme("http://localhost:4318"))
	assert.Equal(t, "localhost:4317", stripScheme("localhost:4317"))
}

func TestShutdownNil(t *testing.T) {
	var tel *Telemetry
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.ForceFlush(context.Background()))
}
