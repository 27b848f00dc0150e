package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/access"
	"github.com/capitolworks/congressd/internal/config"
	"github.com/capitolworks/congressd/internal/logging"
)

func testConfig() *config.Config {
	return &config.Config{
		Congress: config.CongressConfig{
			APIKey: "test-key",
			Tier:   "free",
		},
		Cache: config.CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Logging: logging.NewDefaultConfig(),
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, zap.NewNop())
	assert.Error(t, err)
}

func TestNewBuildsClient(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Client)
	assert.Equal(t, access.TierFree, a.Tier)
	assert.Equal(t, time.Minute, a.Client.CacheStats().TTL)
}

func TestNewRejectsMissingAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.Congress.APIKey = ""
	_, err := New(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestUptimeAdvances(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.GreaterOrEqual(t, a.Uptime(), time.Duration(0))
}
