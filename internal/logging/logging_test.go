package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewWithOTELBridge(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.OTEL = true

	logger, err := New(cfg)
	require.NoError(t, err)

	// The bridge emits through the global logger provider, no-op unless
	// one is registered; logging must work either way.
	logger.Info("bridge check")
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestRedactURL(t *testing.T) {
	in := "https://api.congress.gov/v3/bill/119/hr?api_key=supersecret&limit=20"
	out := RedactURL(in)
	assert.NotContains(t, out, "supersecret")
	assert.Contains(t, out, "api_key=REDACTED")
	assert.Contains(t, out, "limit=20")
}

func TestRedactURLNoKey(t *testing.T) {
	in := "https://api.congress.gov/v3/bill?limit=20"
	assert.Equal(t, in, RedactURL(in))
}
