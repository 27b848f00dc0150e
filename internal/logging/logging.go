// Package logging builds the zap logger used across congressd.
package logging

import (
	"fmt"
	"net/url"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`

	// Stderr sends output to stderr instead of stdout. Required when the
	// MCP server runs on stdio, which owns stdout for the protocol.
	Stderr bool `koanf:"stderr"`

	// OTEL tees log records into the OpenTelemetry zap bridge, emitting
	// through the globally registered logger provider.
	OTEL bool `koanf:"otel"`
}

// NewDefaultConfig returns production-ready defaults. Stderr is on by
// default because stdio is the primary MCP transport.
func NewDefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Stderr: true,
	}
}

// Validate checks config for errors.
func (c Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid level %q: %w", c.Level, err)
	}
	return nil
}

// New creates a zap logger from config.
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	level, _ := zapcore.ParseLevel(cfg.Level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:         zap.NewAtomicLevelAt(level),
		Encoding:      cfg.Format,
		EncoderConfig: encoderCfg,
		OutputPaths:   []string{"stdout"},
		ErrorOutputPaths: []string{
			"stderr",
		},
	}
	if cfg.Stderr {
		zapCfg.OutputPaths = []string{"stderr"}
	}

	var opts []zap.Option
	if cfg.OTEL {
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelzap.NewCore("congressd"))
		}))
	}

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("service", "congressd")), nil
}

// RedactURL returns rawURL with any api_key query value masked, so
// request URLs are safe to log.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
