package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments recomputes, the pass memo and sessions.
type Metrics struct {
	Recomputes        prometheus.Counter
	RecomputeDuration prometheus.Histogram
	MemoHits          prometheus.Counter
	MemoMisses        prometheus.Counter
	SelectionRequired *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
}

// NewMetrics registers the dashboard collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Recomputes: f.NewCounter(prometheus.CounterOpts{
			Name: "seagreen_recomputes_total",
			Help: "Total selection recomputes",
		}),
		RecomputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "seagreen_recompute_duration_seconds",
			Help:    "Recompute duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
		}),
		MemoHits: f.NewCounter(prometheus.CounterOpts{
			Name: "seagreen_pass_memo_hits_total",
			Help: "Base-filter passes served from the memo",
		}),
		MemoMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "seagreen_pass_memo_misses_total",
			Help: "Base-filter passes built on demand",
		}),
		SelectionRequired: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seagreen_selection_required_total",
			Help: "View outputs that asked the user for a selection",
		}, []string{"view"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "seagreen_active_sessions",
			Help: "Open dashboard sessions",
		}),
	}
}
