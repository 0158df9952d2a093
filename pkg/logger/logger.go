package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging configuration, populated from environment variables
// by the application config.
type Config struct {
	// Level is the minimum level emitted: debug, info, warn, error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// JSON switches from human-readable text output to JSON lines.
	// Use JSON in production so log shippers can parse structured fields.
	JSON bool `env:"LOG_JSON" envDefault:"false"`
}

// New creates a logger writing to stdout. Output format and level come from
// cfg; extractors inject request-scoped attributes (e.g. request_id) into
// every record emitted with a request context.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is [New] with an explicit destination. Used by tests to
// capture output.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(NewContextHandler(handler, extractors...))
}

// Discard creates a no-op logger. Use as a default when logging is not
// configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string to a slog.Level. Unknown values fall back
// to info rather than failing startup.
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
