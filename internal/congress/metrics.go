// Package congress owns all contact with the Congress.gov REST API.
package congress

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/capitolworks/congressd/internal/congress"

// Metrics holds upstream request metrics.
type Metrics struct {
	meter    metric.Meter
	logger   *zap.Logger
	requests metric.Int64Counter
	retries  metric.Int64Counter
	duration metric.Float64Histogram
	cacheOps metric.Int64Counter
}

// NewMetrics creates a Metrics instance bound to the global meter provider.
func NewMetrics(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Metrics{
		meter:  otel.Meter(instrumentationName),
		logger: logger,
	}
	m.init()
	return m
}

func (m *Metrics) init() {
	var err error

	m.requests, err = m.meter.Int64Counter(
		"congressd.upstream.requests_total",
		metric.WithDescription("Total Congress.gov requests labeled by endpoint family and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.logger.Warn("failed to create requests counter", zap.Error(err))
	}

	m.retries, err = m.meter.Int64Counter(
		"congressd.upstream.retries_total",
		metric.WithDescription("Total retry attempts against Congress.gov"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		m.logger.Warn("failed to create retries counter", zap.Error(err))
	}

	m.duration, err = m.meter.Float64Histogram(
		"congressd.upstream.request_duration_seconds",
		metric.WithDescription("Duration of Congress.gov requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 20.0),
	)
	if err != nil {
		m.logger.Warn("failed to create duration histogram", zap.Error(err))
	}

	m.cacheOps, err = m.meter.Int64Counter(
		"congressd.upstream.cache_ops_total",
		metric.WithDescription("Response cache lookups labeled hit or miss"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		m.logger.Warn("failed to create cache ops counter", zap.Error(err))
	}
}

// RecordRequest records one completed upstream request.
func (m *Metrics) RecordRequest(ctx context.Context, family Family, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("family", string(family)),
		attribute.String("outcome", outcome),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, d.Seconds(), attrs)
	}
}

// RecordRetry records one retry attempt.
func (m *Metrics) RecordRetry(ctx context.Context, family Family) {
	if m == nil || m.retries == nil {
		return
	}
	m.retries.Add(ctx, 1, metric.WithAttributes(attribute.String("family", string(family))))
}

// RecordCache records a cache hit or miss.
func (m *Metrics) RecordCache(ctx context.Context, hit bool) {
	if m == nil || m.cacheOps == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOps.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
