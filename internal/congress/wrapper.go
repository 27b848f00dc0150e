package congress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/apierr"
)

// Option adjusts one SafeRequest call without mutating the policy table.
type Option func(*callConfig)

type callConfig struct {
	family        Family
	familyForced  bool
	timeout       time.Duration
	retryCount    int
	retryOverride bool
}

// WithFamily forces the endpoint family instead of resolving it from the
// request path.
func WithFamily(f Family) Option {
	return func(c *callConfig) {
		c.family = f
		c.familyForced = true
	}
}

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *callConfig) {
		c.timeout = d
	}
}

// WithRetryCount overrides the number of retries after the first attempt.
func WithRetryCount(n int) Option {
	return func(c *callConfig) {
		c.retryCount = n
		c.retryOverride = true
	}
}

// SafeRequest is the defensive entry point every tool goes through.
//
// It resolves the endpoint family's retry policy, sanitizes parameters,
// and runs the attempt loop: definitive failures (400/401/403/404) stop
// immediately, everything else retries with exponential backoff capped at
// the policy's maximum. The delay grows after each sleep, so the first
// retry waits the base delay. On exhaustion the last error is classified
// into the apierr taxonomy; the returned error is always an *apierr.Error.
func (c *Client) SafeRequest(ctx context.Context, endpoint string, params map[string]any, opts ...Option) (map[string]any, error) {
	cc := callConfig{family: ResolveFamily(endpoint)}
	for _, opt := range opts {
		opt(&cc)
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "congress.SafeRequest",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("congress.endpoint", endpoint),
			attribute.String("congress.family", string(cc.family))))
	defer span.End()

	policy := PolicyFor(cc.family)
	if cc.timeout > 0 {
		policy.Timeout = cc.timeout
	}
	if cc.retryOverride && cc.retryCount >= 0 {
		policy.RetryCount = cc.retryCount
	}

	var sanitized map[string]string
	if policy.SanitizeParams {
		sanitized = SanitizeParams(params, policy.RemoveEmptyParams)
	} else {
		sanitized = SanitizeParams(params, false)
	}

	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("endpoint", endpoint),
		zap.String("family", string(cc.family)),
	)

	delay := policy.RetryDelay
	var lastErr error

	for attempt := 0; attempt <= policy.RetryCount; attempt++ {
		if attempt > 0 {
			log.Debug("retrying after backoff",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			if err := sleepFn(ctx, delay); err != nil {
				lastErr = err
				break
			}
			delay = nextDelay(delay, policy)
			c.metrics.RecordRetry(ctx, cc.family)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		body, err := c.Get(attemptCtx, endpoint, sanitized)
		cancel()

		if err == nil {
			span.SetAttributes(attribute.Int("congress.attempts", attempt+1))
			return body, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && se.Definitive() {
			log.Debug("definitive failure, not retrying", zap.Int("status", se.Code))
			break
		}
		if ctx.Err() != nil {
			break
		}
		log.Debug("attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	}

	apiErr := Classify(lastErr, endpoint)
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, apiErr.Code)
	log.Error("request failed",
		zap.String("error_code", apiErr.Code),
		zap.String("error_type", string(apiErr.Type)),
		zap.Error(lastErr))
	return nil, apiErr
}

// nextDelay advances the backoff: delay * multiplier, capped at the
// policy maximum.
func nextDelay(delay time.Duration, p Policy) time.Duration {
	next := time.Duration(float64(delay) * p.BackoffMultiplier)
	if next > p.MaxRetryDelay {
		return p.MaxRetryDelay
	}
	return next
}

// sleepFn is the backoff sleep. A variable so tests can avoid real
// sleeps.
var sleepFn = sleepCtx

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Classify maps a transport-layer failure to its taxonomy error. The
// switch is structural: it inspects typed errors and status codes, never
// message text.
func Classify(err error, endpoint string) *apierr.Error {
	if err == nil {
		return apierr.General("request failed for an unknown reason")
	}

	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if isTimeout(err) {
		return apierr.Timeout(endpoint)
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == 404:
			return apierr.NotFound(endpoint)
		case se.Code == 400:
			return apierr.BadRequest(endpoint)
		case se.Code == 401 || se.Code == 403:
			return apierr.Authentication()
		case se.Code == 429:
			return apierr.RateLimited()
		case se.Code >= 500:
			return apierr.ServerError(endpoint, se.Code)
		default:
			return apierr.General(se.Error()).WithDetails(map[string]any{"status": se.Code})
		}
	}

	var de *DecodeError
	if errors.As(err, &de) {
		return apierr.General(de.Error())
	}

	if errors.Is(err, context.Canceled) {
		return apierr.General("request canceled")
	}

	return apierr.General(err.Error())
}
