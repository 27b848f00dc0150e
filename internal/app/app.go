// Package app wires configuration into the long-lived process state.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/access"
	"github.com/capitolworks/congressd/internal/config"
	"github.com/capitolworks/congressd/internal/congress"
)

// Context holds the process-lifetime state shared by every transport:
// the upstream client (with its cache, limiter and request counter), the
// resolved tier and the start time.
type Context struct {
	Config  *config.Config
	Logger  *zap.Logger
	Client  *congress.Client
	Tier    access.Tier
	Started time.Time
}

// New builds the shared state from validated configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Context, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := congress.Config{
		BaseURL:           cfg.Congress.BaseURL,
		APIKey:            cfg.Congress.APIKey,
		RequestsPerSecond: cfg.Congress.RequestsPerSecond,
		Burst:             cfg.Congress.Burst,
		Logger:            logger,
	}
	if cfg.Cache.Enabled {
		clientCfg.CacheTTL = cfg.Cache.TTL
	}

	client, err := congress.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create congress client: %w", err)
	}

	return &Context{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Tier:    access.Tier(cfg.Congress.Tier),
		Started: time.Now(),
	}, nil
}

// Uptime reports how long the process state has been alive.
func (a *Context) Uptime() time.Duration {
	return time.Since(a.Started)
}

// Close releases the upstream client and flushes the logger.
func (a *Context) Close() {
	a.Client.Close()
	_ = a.Logger.Sync()
}
