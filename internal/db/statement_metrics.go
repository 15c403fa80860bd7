package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/metrics"
	"github.com/lcsouza2/fittude-data-repo/pkg"
)

type statementStartKey struct{}

type statementStart struct {
	verb string
	at   time.Time
}

// StatementMetricsTracer is a pgx.QueryTracer feeding statement counters and
// durations into the metrics manager.
type StatementMetricsTracer struct {
	metrics *metrics.Manager
	now     func() time.Time
}

func NewStatementMetricsTracer(m *metrics.Manager) *StatementMetricsTracer {
	return &StatementMetricsTracer{
		metrics: m,
		now:     time.Now,
	}
}

func (t *StatementMetricsTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	t.metrics.GaugeStatementsInFlight.Inc()
	return context.WithValue(ctx, statementStartKey{}, statementStart{
		verb: statementVerb(data.SQL),
		at:   t.now(),
	})
}

func (t *StatementMetricsTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(statementStartKey{}).(statementStart)
	if !ok {
		return
	}
	t.metrics.GaugeStatementsInFlight.Dec()
	t.metrics.HistogramStatementDuration.
		WithLabelValues(start.verb).
		Observe(t.now().Sub(start.at).Seconds())
	t.metrics.CounterStatements.
		WithLabelValues(start.verb, statementOutcome(data.Err)).
		Inc()
}

// statementVerb keeps label cardinality bounded to a handful of verbs.
func statementVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "OTHER"
	}
	verb := strings.ToUpper(fields[0])
	switch verb {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "WITH", "BEGIN", "COMMIT", "ROLLBACK":
		return verb
	default:
		return "OTHER"
	}
}

func statementOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case pkg.IsIntegrityViolationError(err):
		return "constraint"
	default:
		return "error"
	}
}
