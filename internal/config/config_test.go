package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONGRESS_API_KEY", "test-key")

	cfg, err := Load(writeConfigFile(t, "", 0600))
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Congress.APIKey)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, 9270, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "free", cfg.Congress.Tier)
	assert.Equal(t, 1.4, cfg.Congress.RequestsPerSecond)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Tracing.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Tracing.Endpoint)
	assert.Equal(t, "grpc", cfg.Telemetry.Tracing.Protocol)
	assert.Equal(t, 1.0, cfg.Telemetry.Tracing.SampleRate)
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("CONGRESS_API_KEY", "test-key")

	path := writeConfigFile(t, `
server:
  transport: http
  http_port: 8080
cache:
  ttl: 1m
congress:
  tier: paid
`, 0600)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "paid", cfg.Congress.Tier)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("CONGRESS_API_KEY", "test-key")
	t.Setenv("SERVER_HTTP_PORT", "7000")

	path := writeConfigFile(t, "server:\n  http_port: 8080\n", 0600)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
}

func TestLoadRejectsWorldReadableFile(t *testing.T) {
	t.Setenv("CONGRESS_API_KEY", "test-key")

	path := writeConfigFile(t, "server:\n  http_port: 8080\n", 0644)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("CONGRESS_API_KEY", "")

	_, err := Load(writeConfigFile(t, "", 0600))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Congress.APIKey = "k"
		applyDefaults(cfg)
		return cfg
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Server.Transport = "grpc"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.HTTPPort = 70000
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Congress.Tier = "platinum"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Telemetry.Tracing.Enabled = true
	cfg.Telemetry.Tracing.Protocol = "udp"
	assert.Error(t, cfg.Validate())
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "congress.api_key", envTransform("CONGRESS_API_KEY"))
	assert.Equal(t, "server.http_port", envTransform("SERVER_HTTP_PORT"))
	assert.Equal(t, "cache.ttl", envTransform("CACHE_TTL"))
	assert.Equal(t, "path", envTransform("PATH"))
}
