package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitbot",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitbot",
			Name:      "resolutions_total",
			Help:      "Answered questions by resolver tier and escalation outcome.",
		},
		[]string{"tier", "escalated"},
	)

	generationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitbot",
			Name:      "generation_attempts_total",
			Help:      "Generation backend calls by result.",
		},
		[]string{"result"},
	)

	generationLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recruitbot",
			Name:      "generation_latency_seconds",
			Help:      "Latency of a single generation backend call.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 45},
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, resolutions, generationAttempts, generationLatency)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// ObserveResolution counts one gated pipeline result.
func ObserveResolution(tier string, escalated bool) {
	resolutions.WithLabelValues(tier, strconv.FormatBool(escalated)).Inc()
}

// ObserveGeneration records one backend attempt ("ok", "error", "timeout", "invalid").
func ObserveGeneration(result string, took time.Duration) {
	generationAttempts.WithLabelValues(result).Inc()
	generationLatency.Observe(took.Seconds())
}
