package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type traceStartKey struct{}

// queryTracer logs every statement at debug level. Attached to the pool only
// when Config.Echo is set.
type queryTracer struct {
	log *slog.Logger
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	t.log.DebugContext(ctx, "query start", slog.String("sql", data.SQL))
	return context.WithValue(ctx, traceStartKey{}, time.Now())
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	attrs := []any{}
	if start, ok := ctx.Value(traceStartKey{}).(time.Time); ok {
		attrs = append(attrs, slog.Duration("duration", time.Since(start)))
	}
	if data.Err != nil {
		attrs = append(attrs, slog.String("error", data.Err.Error()))
		t.log.DebugContext(ctx, "query failed", attrs...)
		return
	}
	t.log.DebugContext(ctx, "query end", attrs...)
}
