package weather

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weatherfav_upstream_requests_total",
		Help: "Calls to the OpenWeather API by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "weatherfav_upstream_request_duration_seconds",
		Help:    "Latency of OpenWeather API calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func observe(endpoint, outcome string, start time.Time) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
