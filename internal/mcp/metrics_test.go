package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/apierr"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", apierr.NotFound("bill"), "not_found"},
		{"timeout", apierr.Timeout("request"), "timeout"},
		{"validation", apierr.FromValidation("bad input", nil), "validation"},
		{"rate limit", apierr.RateLimited(), "rate_limit"},
		{"plain error", errors.New("boom"), "internal_error"},
		// A message mentioning "not found" must not change the class.
		{"misleading message", errors.New("file not found on disk"), "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeError(tt.err))
		})
	}
}

func TestMetricsRecordingDoesNotPanic(t *testing.T) {
	m := NewMetrics(zap.NewNop())
	ctx := context.Background()

	m.IncrementActive(ctx, "search_bills")
	m.RecordInvocation(ctx, "search_bills", 50*time.Millisecond, nil)
	m.RecordInvocation(ctx, "search_bills", 50*time.Millisecond, apierr.NotFound("bill"))
	m.DecrementActive(ctx, "search_bills")
}
