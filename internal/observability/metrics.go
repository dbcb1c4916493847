package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "event_manager"

// Metrics holds the Prometheus counters, histograms, and gauges for a roster run.
type Metrics struct {
	RowsRead        prometheus.Counter
	LettersWritten  prometheus.Counter
	RowsSkipped     *prometheus.CounterVec // labels: reason={invalid_time}
	PipelineRunning prometheus.Gauge
	RunDuration     prometheus.Histogram

	// Representative lookup metrics.
	LookupRequests    *prometheus.CounterVec // labels: outcome={success,transport,unauthorized,bad_address,quota,service,decode}
	LookupFallbacks   *prometheus.CounterVec // labels: reason
	LookupCache       *prometheus.CounterVec // labels: result={hit,miss}
	LookupAPIDuration prometheus.Histogram
	LookupEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.LettersWritten,
		m.RowsSkipped,
		m.PipelineRunning,
		m.RunDuration,
		m.LookupRequests,
		m.LookupFallbacks,
		m.LookupCache,
		m.LookupAPIDuration,
		m.LookupEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total roster rows read.",
		}),
		LettersWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "letters_written_total",
			Help:      "Total thank-you letters written.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Roster rows skipped, by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while a roster run is active, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete roster run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
		LookupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_requests_total",
			Help:      "Civic information API requests by outcome.",
		}, []string{"outcome"}),
		LookupFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_fallbacks_total",
			Help:      "Letters rendered with fallback guidance, by reason.",
		}, []string{"reason"}),
		LookupCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_total",
			Help:      "Representative cache lookups by result.",
		}, []string{"result"}),
		LookupAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_api_duration_seconds",
			Help:      "Civic information API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		LookupEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lookup_enabled",
			Help:      "1 when representative lookup is enabled, 0 otherwise.",
		}),
	}
}
