// Package log provides slog-based logging setup shared by all binaries.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to its slog level. Unknown names default to
// info so a typo in LOG_LEVEL never silences the logs.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
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

// Setup installs the process-wide default logger writing to stderr.
func Setup(logLevel string) {
	SetupWithWriter(logLevel, os.Stderr)
}

// SetupWithWriter is Setup with a caller-chosen destination, used by tests
// and by binaries that redirect their logs.
func SetupWithWriter(logLevel string, w io.Writer) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	})))
}

// WithModule returns the default logger tagged with a module field.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
