package pgrepo

import (
	"context"
	"time"

	"gamestore-admin/pkg/logger"

	"github.com/jackc/pgx/v5"
)

// queryTracer logs every statement at debug level with its duration.
type queryTracer struct{}

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

func (queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: time.Now()})
}

func (queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	if t, ok := ctx.Value(traceKey{}).(traceStart); ok {
		logger.DBQuery(ctx, t.sql, time.Since(t.start), data.Err)
	}
}
