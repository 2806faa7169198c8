package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "seatbooking"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_total",
			Help:      "Reservation attempts by outcome.",
		},
		[]string{"result"},
	)

	cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Cancellation attempts by outcome.",
		},
		[]string{"result"},
	)

	reports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Filed reports by whether an occupant was resolved.",
		},
		[]string{"resolved"},
	)

	storeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reserve_duration_seconds",
			Help:      "Latency of the atomic conflict-checked insert.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservations, cancellations, reports, storeLatency)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// ObserveReservation records one tryReserve outcome ("ok" or an error kind).
func ObserveReservation(result string, took time.Duration) {
	reservations.WithLabelValues(result).Inc()
	storeLatency.WithLabelValues(result).Observe(took.Seconds())
}

func IncCancellation(result string) {
	cancellations.WithLabelValues(result).Inc()
}

func IncReport(resolved bool) {
	reports.WithLabelValues(strconv.FormatBool(resolved)).Inc()
}
