package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sonica/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, logger.ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	t.Run("json format emits parseable lines", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Level: "info", JSON: true})
		log.Info("hello", slog.String("k", "v"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "hello", rec["msg"])
		require.Equal(t, "v", rec["k"])
	})

	t.Run("level filters lower records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Level: "warn"})
		log.Info("dropped")
		require.Zero(t, buf.Len())
		log.Warn("kept")
		require.Contains(t, buf.String(), "kept")
	})
}

func TestContextExtractor(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{}).(string); ok {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "info", JSON: true}, extractor)

	t.Run("injects attribute from context", func(t *testing.T) {
		buf.Reset()
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-123")
		log.InfoContext(ctx, "with id")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "req-123", rec["request_id"])
	})

	t.Run("silent when context carries nothing", func(t *testing.T) {
		buf.Reset()
		log.InfoContext(context.Background(), "without id")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.NotContains(t, rec, "request_id")
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		var out bytes.Buffer
		l := logger.NewWithWriter(&out, logger.Config{Level: "info"}, nil, extractor)
		require.NotPanics(t, func() {
			l.InfoContext(context.Background(), "ok")
		})
	})
}
