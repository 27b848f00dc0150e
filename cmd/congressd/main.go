// Congressd is an MCP server for the Congress.gov REST API v3.
//
// The MCP protocol is served on stdio by default, or over streamable HTTP
// when server.transport is "http". An operational HTTP server always runs
// alongside with /health, /metrics and cache endpoints.
//
// Configuration is loaded from ~/.config/congressd/config.yaml, overridden
// by environment variables (CONGRESS_API_KEY, SERVER_HTTP_PORT, ...). A
// .env file in the working directory is honored at startup.
//
// Usage:
//
//	# Start the server with defaults
//	CONGRESS_API_KEY=... congressd
//
//	# Use an explicit config file
//	congressd -config /etc/congressd/config.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/app"
	"github.com/capitolworks/congressd/internal/config"
	httpserver "github.com/capitolworks/congressd/internal/http"
	"github.com/capitolworks/congressd/internal/logging"
	mcpserver "github.com/capitolworks/congressd/internal/mcp"
	"github.com/capitolworks/congressd/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/congressd/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  congressd           Start the MCP server\n")
			fmt.Fprintf(os.Stderr, "  congressd version   Show version information\n")
			os.Exit(1)
		}
	}

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("congressd\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the server and blocks until ctx is cancelled:
//  1. load and validate configuration
//  2. initialize logger and telemetry
//  3. build the shared Congress.gov client
//  4. wire the MCP server and the operational HTTP server
//  5. graceful shutdown on cancellation
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	tel, err := telemetry.New(ctx, version, cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	appCtx, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	logger.Info("starting congressd",
		zap.String("version", version),
		zap.String("transport", cfg.Server.Transport),
		zap.Int("http_port", cfg.Server.HTTPPort),
		zap.Bool("cache", cfg.Cache.Enabled))

	mcpCfg := mcpserver.DefaultConfig()
	mcpCfg.Version = version
	mcpCfg.Tier = appCtx.Tier
	mcpCfg.Logger = logger

	mcpSrv, err := mcpserver.NewServer(mcpCfg, appCtx.Client)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	httpSrv, err := httpserver.NewServer(appCtx.Client, mcpSrv.Registry(), tel.Registry(), logger, &httpserver.Config{
		Host: cfg.Server.HTTPHost,
		Port: cfg.Server.HTTPPort,
	})
	if err != nil {
		return fmt.Errorf("create HTTP server: %w", err)
	}
	if cfg.Server.Transport == "http" {
		httpSrv.MountMCP(mcpSrv.HTTPHandler())
	}

	httpErr := make(chan error, 1)
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
	}()

	mcpErr := make(chan error, 1)
	if cfg.Server.Transport == "stdio" {
		go func() {
			mcpErr <- mcpSrv.Run(ctx)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-httpErr:
	case runErr = <-mcpErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
	if err := mcpSrv.Close(); err != nil {
		logger.Warn("mcp server close", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown", zap.Error(err))
	}

	return runErr
}
