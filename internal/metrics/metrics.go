// Package metrics exposes Prometheus collectors for the feedback pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tukerank"

// Metrics holds the service collectors on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	feedbackProcessed      *prometheus.CounterVec
	feedbackFailures       *prometheus.CounterVec
	classificationDuration prometheus.Histogram
	eloChange              prometheus.Histogram
	ratingConflicts        prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		feedbackProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "processed_total",
			Help:      "Feedback submissions persisted, by sentiment.",
		}, []string{"sentiment"}),
		feedbackFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "failures_total",
			Help:      "Feedback submissions that failed, by error kind.",
		}, []string{"kind"}),
		classificationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "duration_seconds",
			Help:      "Time spent scoring review text.",
			Buckets:   prometheus.DefBuckets,
		}),
		eloChange: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rating",
			Name:      "elo_change",
			Help:      "Signed rating change applied per feedback.",
			Buckets:   prometheus.LinearBuckets(-16, 4, 9),
		}),
		ratingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rating",
			Name:      "conflicts_total",
			Help:      "Rating compare-and-set attempts lost to a concurrent update.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status_code"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
	}

	m.registry.MustRegister(
		m.feedbackProcessed,
		m.feedbackFailures,
		m.classificationDuration,
		m.eloChange,
		m.ratingConflicts,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveClassification(d time.Duration) {
	m.classificationDuration.Observe(d.Seconds())
}

func (m *Metrics) FeedbackProcessed(sentiment string, eloChange int) {
	m.feedbackProcessed.WithLabelValues(sentiment).Inc()
	m.eloChange.Observe(float64(eloChange))
}

func (m *Metrics) FeedbackFailed(kind string) {
	m.feedbackFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) RatingConflict() {
	m.ratingConflicts.Inc()
}
