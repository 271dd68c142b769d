package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config represents logger configuration
type Config struct {
	// Level is one of debug, info, warn or error
	Level string `json:"level" yaml:"level"`
	// Format is text or json
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns info level text logging
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}

// Level maps a level name to slog.Level, defaulting to info
func Level(name string) slog.Level {
	switch strings.ToLower(name) {
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

// New creates a logger writing to w, or stderr when w is nil
func New(config Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	options := &slog.HandlerOptions{Level: Level(config.Level)}
	var handler slog.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	return slog.New(handler)
}

// Discard returns a logger dropping every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
