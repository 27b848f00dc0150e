// Package telemetry wires the OpenTelemetry providers for congressd.
//
// Metrics are exported through the Prometheus registry scraped at
// /metrics on the operational HTTP server. Traces are exported over OTLP
// when tracing is enabled. Telemetry failures never crash the server; a
// broken trace exporter degrades to the no-op global provider.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
)

// Config holds telemetry configuration.
type Config struct {
	Tracing TracingConfig `koanf:"tracing"`
}

// TracingConfig configures the OTLP span pipeline.
type TracingConfig struct {
	Enabled bool `koanf:"enabled"`

	// Endpoint is the OTLP collector address (host:port).
	Endpoint string `koanf:"endpoint"`

	// Protocol is "grpc" or "http/protobuf".
	Protocol string `koanf:"protocol"`

	// Insecure disables TLS on the exporter connection.
	Insecure bool `koanf:"insecure"`

	// SampleRate is the head sampling ratio in [0, 1]. 1 samples every
	// trace; the parent's decision always wins for child spans.
	SampleRate float64 `koanf:"sample_rate"`
}

// NewDefaultConfig returns defaults with tracing disabled.
func NewDefaultConfig() Config {
	return Config{
		Tracing: TracingConfig{
			Endpoint:   "localhost:4317",
			Protocol:   "grpc",
			SampleRate: 1.0,
		},
	}
}

// Validate checks config for errors. Tracing settings are only checked
// when tracing is enabled.
func (c Config) Validate() error {
	if !c.Tracing.Enabled {
		return nil
	}
	if c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	switch c.Tracing.Protocol {
	case "grpc", "http/protobuf":
	default:
		return fmt.Errorf("tracing.protocol must be 'grpc' or 'http/protobuf', got %q", c.Tracing.Protocol)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be in [0, 1], got %v", c.Tracing.SampleRate)
	}
	return nil
}

// Option adjusts telemetry construction.
type Option func(*options)

type options struct {
	spanExporter sdktrace.SpanExporter
}

// WithSpanExporter overrides the OTLP span exporter. Tests use this to
// capture spans in memory.
func WithSpanExporter(exp sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.spanExporter = exp
	}
}

// Telemetry owns the meter and tracer providers and the Prometheus
// registry.
type Telemetry struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	registry       *prometheus.Registry
	logger         *zap.Logger
}

// New initializes the global meter provider with a Prometheus exporter
// and, when tracing is enabled, the global tracer provider with an OTLP
// exporter. version labels the service resource.
func New(ctx context.Context, version string, cfg Config, logger *zap.Logger, opts ...Option) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		// Standard Go runtime collector alongside the OTel bridge.
		collectors.NewGoCollector(),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("congressd"),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		logger.Warn("telemetry resource merge failed", zap.Error(err))
		res = resource.Default()
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	t := &Telemetry{
		meterProvider: mp,
		registry:      registry,
		logger:        logger,
	}

	if cfg.Tracing.Enabled || o.spanExporter != nil {
		spanExp := o.spanExporter
		var expErr error
		if spanExp == nil {
			spanExp, expErr = newSpanExporter(ctx, cfg.Tracing)
		}
		if expErr != nil {
			// Tracing is optional; a broken exporter leaves the no-op
			// global provider in place.
			logger.Warn("trace exporter init failed, tracing disabled", zap.Error(expErr))
		} else {
			tp := sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(spanExp),
				sdktrace.WithResource(res),
				sdktrace.WithSampler(sdktrace.ParentBased(newSampler(cfg.Tracing.SampleRate))),
			)
			otel.SetTracerProvider(tp)
			otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
				propagation.TraceContext{},
				propagation.Baggage{},
			))
			t.tracerProvider = tp
		}
	}

	return t, nil
}

// newSpanExporter builds the OTLP exporter for the configured protocol.
func newSpanExporter(ctx context.Context, cfg TracingConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Protocol {
	case "http/protobuf":
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(stripScheme(cfg.Endpoint)),
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default: // grpc
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	}
}

// newSampler maps a sampling rate to a head sampler.
func newSampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// stripScheme removes http:// or https:// from an endpoint. The OTLP
// HTTP exporter expects host:port, not a URL.
func stripScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	return strings.TrimPrefix(endpoint, "http://")
}

// Registry returns the Prometheus registry for the /metrics handler.
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// ForceFlush immediately exports pending telemetry.
func (t *Telemetry) ForceFlush(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.ForceFlush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("trace flush: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.ForceFlush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter flush: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Shutdown flushes and stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
