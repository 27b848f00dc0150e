// Package config provides configuration loading for congressd.
package config

import (
	"fmt"
	"time"

	"github.com/capitolworks/congressd/internal/access"
	"github.com/capitolworks/congressd/internal/logging"
	"github.com/capitolworks/congressd/internal/telemetry"
)

// Config is the full congressd configuration.
type Config struct {
	Congress  CongressConfig   `koanf:"congress"`
	Server    ServerConfig     `koanf:"server"`
	Cache     CacheConfig      `koanf:"cache"`
	Logging   logging.Config   `koanf:"logging"`
	Telemetry telemetry.Config `koanf:"telemetry"`
}

// CongressConfig configures the upstream Congress.gov client.
type CongressConfig struct {
	// APIKey is the Congress.gov API key. Required.
	APIKey string `koanf:"api_key"`

	// BaseURL overrides the API root. Defaults to the public v3 root.
	BaseURL string `koanf:"base_url"`

	// RequestsPerSecond throttles upstream calls; burst is the limiter
	// bucket size.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// Tier gates paid-only tools: "free" or "paid".
	Tier string `koanf:"tier"`
}

// ServerConfig configures transports and the operational HTTP server.
type ServerConfig struct {
	// Transport is "stdio" or "http".
	Transport string `koanf:"transport"`

	// HTTPHost/HTTPPort bind the operational server (/health, /metrics)
	// and, for the http transport, the MCP endpoint.
	HTTPHost string `koanf:"http_host"`
	HTTPPort int    `koanf:"http_port"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CacheConfig configures the in-memory response cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Congress.RequestsPerSecond == 0 {
		cfg.Congress.RequestsPerSecond = 1.4
	}
	if cfg.Congress.Burst == 0 {
		cfg.Congress.Burst = 5
	}
	if cfg.Congress.Tier == "" {
		cfg.Congress.Tier = string(access.TierFree)
	}

	if cfg.Server.Transport == "" {
		cfg.Server.Transport = "stdio"
	}
	if cfg.Server.HTTPHost == "" {
		cfg.Server.HTTPHost = "localhost"
	}
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 9270
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if !cfg.Cache.Enabled && cfg.Cache.TTL > 0 {
		cfg.Cache.Enabled = true
	}

	if cfg.Logging.Level == "" {
		cfg.Logging = logging.NewDefaultConfig()
	}

	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = "localhost:4317"
	}
	if cfg.Telemetry.Tracing.Protocol == "" {
		cfg.Telemetry.Tracing.Protocol = "grpc"
	}
	if cfg.Telemetry.Tracing.SampleRate == 0 {
		cfg.Telemetry.Tracing.SampleRate = 1.0
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Congress.APIKey == "" {
		return fmt.Errorf("congress.api_key is required (set CONGRESS_API_KEY)")
	}
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("server.transport must be 'stdio' or 'http', got %q", c.Server.Transport)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if tier := access.Tier(c.Congress.Tier); tier != access.TierFree && tier != access.TierPaid {
		return fmt.Errorf("congress.tier must be 'free' or 'paid', got %q", c.Congress.Tier)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when cache is enabled")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}
