package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/cvorders/internal/config"
)

const serviceName = "cvorders"

// New creates a preconfigured JSON slog.Logger for the given level name.
// Unknown levels fall back to info.
func New(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With(slog.String("service", serviceName))
}

// FromConfig builds the application logger.
func FromConfig(cfg *config.Config) *slog.Logger {
	return New(cfg.LogLevel)
}

func parseLevel(level string) slog.Level {
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
