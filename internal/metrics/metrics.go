// Package metrics defines the Prometheus collectors for the artwork table.
//
// Collectors are registered on the default registry via promauto and are
// exposed by Handler on the configured metrics path.
//
// Upstream API:
//   - artworks_upstream_requests_total{status} (Counter): page requests by outcome
//   - artworks_upstream_request_duration_seconds (Histogram): page request latency
//   - artworks_stale_responses_total (Counter): page loads discarded as superseded
//
// Selection:
//   - artworks_selection_changes_total{result} (Counter): accepted/rejected changes
//   - artworks_submissions_total{result} (Counter): submitted/not_exact/emit_error
//
// Sessions:
//   - artworks_active_sessions (Gauge): table instances held in memory
//
// Example queries:
//
//	# Upstream error rate
//	sum(rate(artworks_upstream_requests_total{status!="200"}[5m]))
//
//	# P95 page latency
//	histogram_quantile(0.95, rate(artworks_upstream_request_duration_seconds_bucket[5m]))
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artworks_upstream_requests_total",
		Help: "Total artwork API page requests by status",
	}, []string{"status"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "artworks_upstream_request_duration_seconds",
		Help:    "Artwork API page request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artworks_stale_responses_total",
		Help: "Page loads discarded because a newer page was requested",
	})

	SelectionChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artworks_selection_changes_total",
		Help: "Selection changes by result",
	}, []string{"result"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artworks_submissions_total",
		Help: "Submit attempts by result",
	}, []string{"result"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "artworks_active_sessions",
		Help: "Table sessions currently held in memory",
	})
)

// Handler returns the Prometheus exposition handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
