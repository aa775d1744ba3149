// Package metrics exposes Prometheus collectors for HTTP traffic, the rate
// feeds and the database pool.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/perkloop/perkloop/internal/application/market"
)

const namespace = "perkloop"

var _ market.RefreshObserver = (*Metrics)(nil)

// Metrics owns a private registry so that tests and multiple servers in one
// process do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	feedRefreshTotal *prometheus.CounterVec
	feedValue        *prometheus.GaugeVec
	breakerState     *prometheus.GaugeVec
	lifecycleEvents  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms ~ 16s
			},
			[]string{"method", "route"},
		),
		feedRefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_refresh_total",
				Help:      "Total number of rate feed refresh attempts.",
			},
			[]string{"feed", "outcome"}, // outcome: ok/error
		),
		feedValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "feed_value",
				Help:      "Last known good value of a rate feed.",
			},
			[]string{"feed"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "feed_circuitbreaker_state",
				Help:      "Feed circuit breaker state (0/1).",
			},
			[]string{"feed", "state"}, // state: closed/open/half-open
		),
		lifecycleEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "investment_lifecycle_events_total",
				Help:      "Total number of published investment lifecycle events.",
			},
			[]string{"type", "outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.feedRefreshTotal,
		m.feedValue,
		m.breakerState,
		m.lifecycleEvents,
	)
	return m
}

// RegisterDB exports the connection pool statistics of db.
func (m *Metrics) RegisterDB(db *sql.DB) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, namespace))
}

// ObserveHTTP records one served request. route is the matched route
// pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRefresh(feed string, ok bool, value float64) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.feedRefreshTotal.WithLabelValues(feed, outcome).Inc()
	if value > 0 {
		m.feedValue.WithLabelValues(feed).Set(value)
	}
}

// ObserveBreakerState sets the gauge of the new state to 1 and the others to 0.
func (m *Metrics) ObserveBreakerState(feed string, state string) {
	for _, s := range []string{"closed", "open", "half-open"} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.breakerState.WithLabelValues(feed, s).Set(v)
	}
}

func (m *Metrics) ObserveLifecycleEvent(eventType string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.lifecycleEvents.WithLabelValues(eventType, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
