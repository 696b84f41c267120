package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for reconciliation runs.
type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	RowsTotal    prometheus.Counter
	RunDuration  prometheus.Histogram
	SitesPerRun  prometheus.Histogram
}

// NewMetrics registers the run metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dgrh_reconcile_runs_total",
			Help: "Reconciliation runs by outcome.",
		}, []string{"status"}),
		RowsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "dgrh_reconcile_alarm_rows_total",
			Help: "Alarm rows that survived the refuelling-window filter.",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dgrh_reconcile_run_duration_seconds",
			Help:    "Wall time of a full reconciliation run.",
			Buckets: prometheus.DefBuckets,
		}),
		SitesPerRun: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dgrh_reconcile_sites_per_run",
			Help:    "Reference sites summarized per run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}
