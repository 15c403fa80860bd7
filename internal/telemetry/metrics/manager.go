package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterStatements *prometheus.CounterVec

	// gauges
	GaugeStatementsInFlight prometheus.Gauge

	// histograms
	HistogramStatementDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fittude", "test_store", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fittude", "test_store", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterStatements := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "statements_total",
		Help:      "The total number of executed statements, by verb and outcome",
	}, []string{"verb", "outcome"})

	gaugeStatementsInFlight := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "statements_in_flight",
		Help:      "Current number of statements being executed",
	})

	histogramStatementDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "statement_duration_seconds",
		Help:      "Histogram of statement execution time in seconds",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"verb"})

	return &Manager{
		CounterStatements:          counterStatements,
		GaugeStatementsInFlight:    gaugeStatementsInFlight,
		HistogramStatementDuration: histogramStatementDuration,
	}
}

// Collectors returns the manager metrics, for registries the manager was not
// created with.
func (m *Manager) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.CounterStatements,
		m.GaugeStatementsInFlight,
		m.HistogramStatementDuration,
	}
}
