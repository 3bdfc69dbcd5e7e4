// Package logging is the ambient structured-logging setup shared by every
// package in this module: a leveled slog.Logger for anything a package
// needs to report that isn't modeled as a returned error (deprecation
// notices, load/save timing, an exporter's I/O failure before it's folded
// into a net's diagnostic buffer).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name ("debug", "info", "warn", "error",
// case-insensitive) to a slog.Level. Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// New returns a leveled slog.Logger writing text-formatted records to w.
func New(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// Configure installs a leveled logger as the process-wide slog.Default(),
// so every petri.Net and handle.Table constructed without an explicit
// SetLogger call picks it up. Intended to run once at cmd/pflow startup.
func Configure(level string) *slog.Logger {
	logger := New(level, os.Stderr)
	slog.SetDefault(logger)
	return logger
}
