// Package logger configures structured logging for the CLI.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a text-handler slog.Logger writing to stderr at the given
// level. Unknown level strings fall back to info.
func New(level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
