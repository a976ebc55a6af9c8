// Package observability bundles the service's logging and Prometheus
// metrics construction.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig is the subset of configuration logging needs; kept local to
// avoid an import cycle with internal/config.
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// NewLogger builds the process logger. Unknown levels fall back to info,
// unknown formats to text; logs go to stderr.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
