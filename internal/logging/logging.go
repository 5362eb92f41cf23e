// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/version"
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values fall
// back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w in the configured format.
func New(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(contextHandler{handler}).With(
		slog.String("service", "edgegate"),
		slog.String("version", version.String()),
	)
}

// Setup installs a logger built from cfg as the slog default and returns it.
func Setup(w io.Writer, cfg *config.Config) *slog.Logger {
	logger := New(w, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}
