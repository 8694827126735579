package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_backend_requests_total",
		Help: "Backend API calls by method, endpoint template and status code.",
	}, []string{"method", "endpoint", "code"})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "artspace_backend_request_duration_seconds",
		Help:    "Backend API call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})
)

func observe(method, endpoint, code string, d time.Duration) {
	backendRequests.WithLabelValues(method, endpoint, code).Inc()
	backendLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
}
