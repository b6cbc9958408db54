// Package logger builds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a configured level name to a slog level. Unknown names
// report ok=false and map to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// New returns a logger writing to w. format is "json" or "text"; anything
// else falls back to text. An unknown level falls back to info and the
// fallback itself is logged as a warning.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	log := slog.New(handler)
	if !ok {
		log.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	return log
}
