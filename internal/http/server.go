// Package http provides the operational HTTP surface for congressd.
//
// The MCP protocol runs over stdio; this server carries everything else:
// health checks, Prometheus metrics, and a small read-only API for cache
// statistics and tool inventory.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/congress"
	mcpserver "github.com/capitolworks/congressd/internal/mcp"
)

// Server provides the operational HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	client   *congress.Client
	registry *mcpserver.ToolRegistry
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates the operational HTTP server. promRegistry may be nil
// to disable the /metrics endpoint.
func NewServer(client *congress.Client, registry *mcpserver.ToolRegistry, promRegistry *prometheus.Registry, logger *zap.Logger, cfg *Config) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("congress client is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 9270,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		client:   client,
		registry: registry,
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes(promRegistry)

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes(promRegistry *prometheus.Registry) {
	s.echo.GET("/health", s.handleHealth)

	if promRegistry != nil {
		s.echo.GET("/metrics", echo.WrapHandler(
			promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))
	}

	v1 := s.echo.Group("/api/v1")
	v1.GET("/cache/stats", s.handleCacheStats)
	v1.DELETE("/cache", s.handleCacheClear)
	v1.GET("/tools", s.handleTools)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// CacheStatsResponse is the response body for GET /api/v1/cache/stats.
type CacheStatsResponse struct {
	Size     int     `json:"size"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
	TTL      string  `json:"ttl"`
	Requests uint64  `json:"upstream_requests"`
}

// ToolsResponse is the response body for GET /api/v1/tools.
type ToolsResponse struct {
	Tools any `json:"tools"`
	Count int `json:"count"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleCacheStats(c echo.Context) error {
	stats := s.client.CacheStats()
	return c.JSON(http.StatusOK, CacheStatsResponse{
		Size:     stats.Size,
		Hits:     stats.Hits,
		Misses:   stats.Misses,
		HitRatio: stats.HitRatio,
		TTL:      stats.TTL.String(),
		Requests: s.client.RequestCount(),
	})
}

func (s *Server) handleCacheClear(c echo.Context) error {
	s.client.ClearCache()
	s.logger.Info("cache cleared via http")
	return c.NoContent(http.StatusNoContent)
}

// handleTools lists registered MCP tools; ?q= narrows by search.
func (s *Server) handleTools(c echo.Context) error {
	if s.registry == nil {
		return echo.NewHTTPError(http.StatusNotFound, "tool registry not available")
	}

	if query := c.QueryParam("q"); query != "" {
		results := s.registry.Search(query)
		return c.JSON(http.StatusOK, ToolsResponse{Tools: results, Count: len(results)})
	}

	tools := s.registry.List()
	return c.JSON(http.StatusOK, ToolsResponse{Tools: tools, Count: len(tools)})
}

// MountMCP serves a streamable-HTTP MCP handler at /mcp. Must be called
// before Start.
func (s *Server) MountMCP(h http.Handler) {
	s.echo.Any("/mcp", echo.WrapHandler(h))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
