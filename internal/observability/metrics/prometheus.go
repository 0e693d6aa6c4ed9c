// Package metrics exposes Prometheus instrumentation for the generation
// pipeline and the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors registered for one server process.
type Metrics struct {
	GenerationRuns     *prometheus.CounterVec
	RecordsGenerated   prometheus.Counter
	GenerationDuration prometheus.Histogram
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registers the collectors with the given registerer and returns them.
// Passing nil registers with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		GenerationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsynth_generation_runs_total",
			Help: "Number of generation runs, by outcome.",
		}, []string{"status"}),
		RecordsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tabsynth_records_generated_total",
			Help: "Total records produced across all runs.",
		}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabsynth_generation_duration_seconds",
			Help:    "Wall-clock duration of generation runs.",
			Buckets: prometheus.DefBuckets,
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsynth_http_requests_total",
			Help: "HTTP requests served, by method, path, and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tabsynth_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}
