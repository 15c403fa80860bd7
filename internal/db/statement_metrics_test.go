package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/metrics"
)

func TestStatementMetricsTracer(t *testing.T) {
	m := metrics.NewTestManager()
	tracer := NewStatementMetricsTracer(m)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tracer.now = func() time.Time { return now }

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
		SQL: "\n\t\tINSERT INTO muscle (user_id) VALUES ($1) RETURNING muscle_id",
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GaugeStatementsInFlight))

	now = now.Add(30 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GaugeStatementsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStatements.WithLabelValues("INSERT", "ok")))

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "insert into muscle"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: &pgconn.PgError{Code: "23505"}})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStatements.WithLabelValues("INSERT", "constraint")))

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("conn closed")})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStatements.WithLabelValues("SELECT", "error")))

	// end without a matching start is ignored
	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GaugeStatementsInFlight))
}

func TestStatementVerb(t *testing.T) {
	assert.Equal(t, "SELECT", statementVerb("  select * from muscle"))
	assert.Equal(t, "DELETE", statementVerb("\nDELETE FROM set_report"))
	assert.Equal(t, "WITH", statementVerb("WITH owned AS (SELECT 1) SELECT 1"))
	assert.Equal(t, "OTHER", statementVerb("CREATE TABLE x ()"))
	assert.Equal(t, "OTHER", statementVerb(""))
}

func TestQueryTracers_RunsAllInOrder(t *testing.T) {
	m1, m2 := metrics.NewTestManager(), metrics.NewTestManager()
	tracers := queryTracers{NewStatementMetricsTracer(m1), NewStatementMetricsTracer(m2)}

	ctx := tracers.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "UPDATE plan"})
	tracers.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m1.CounterStatements.WithLabelValues("UPDATE", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m2.CounterStatements.WithLabelValues("UPDATE", "ok")))
}
