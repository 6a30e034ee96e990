package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_store_operations_total",
			Help: "Total number of patient record store operations",
		},
		[]string{"operation", "status"},
	)

	sessionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_session_events_total",
			Help: "Total number of published session events by type",
		},
		[]string{"type"},
	)

	slipsPrintedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_slips_printed_total",
			Help: "Total number of printed slips by printer",
		},
		[]string{"printer", "status"},
	)
)

func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveStoreOperation counts one store call under its outcome.
func ObserveStoreOperation(operation string, err error) {
	storeOperationsTotal.WithLabelValues(operation, statusOf(err)).Inc()
}

func ObserveSessionEvent(eventType string) {
	sessionEventsTotal.WithLabelValues(eventType).Inc()
}

func ObserveSlipPrinted(printer string, err error) {
	slipsPrintedTotal.WithLabelValues(printer, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
