// Package mcp hosts the Congress.gov tools on the Model Context Protocol.
//
// This implementation uses the MCP SDK (github.com/modelcontextprotocol/go-sdk/mcp)
// and calls the defensive API client directly. Handlers are thin: validate
// parameters, issue a SafeRequest, run the response pipeline, render markdown.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/access"
	"github.com/capitolworks/congressd/internal/congress"
)

// Server wraps the MCP SDK server and the shared Congress.gov client.
type Server struct {
	mcp      *mcp.Server
	client   *congress.Client
	access   *access.Policy
	tier     access.Tier
	registry *ToolRegistry
	metrics  *Metrics
	logger   *zap.Logger
	version  string
	started  time.Time
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "congressd").
	Name string

	// Version is the server version (default: "dev").
	Version string

	// Tier selects the access tier for gated tools (default: free).
	Tier access.Tier

	// Logger for structured logging.
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "congressd",
		Version: "dev",
		Tier:    access.TierFree,
		Logger:  zap.NewNop(),
	}
}

// NewServer creates an MCP server backed by the given client.
func NewServer(cfg *Config, client *congress.Client) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if client == nil {
		return nil, fmt.Errorf("congress client is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		client:   client,
		access:   access.NewPolicy(access.DefaultPaidOperations),
		tier:     cfg.Tier,
		registry: NewToolRegistry(),
		metrics:  NewMetrics(cfg.Logger),
		logger:   cfg.Logger,
		version:  cfg.Version,
		started:  time.Now(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Registry exposes the tool registry for the operational HTTP surface.
func (s *Server) Registry() *ToolRegistry {
	return s.registry
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport",
		zap.Int("tools", s.registry.Count()),
		zap.String("tier", string(s.tier)))
	transport := &mcp.StdioTransport{}
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// HTTPHandler returns a streamable-HTTP handler serving this MCP server,
// for deployments that cannot use stdio.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// Close releases the shared client's idle connections.
func (s *Server) Close() error {
	s.logger.Info("closing MCP server")
	s.client.Close()
	return nil
}
