// Package metrics defines the bot's Prometheus collectors. All methods are
// safe on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rastreio"

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	inbound        *prometheus.CounterVec
	turns          *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	alerts         prometheus.Counter
	handoffs       prometheus.Counter
	housekeeping   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// New creates a registry with Go and process collectors plus the bot's own.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		inbound: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "inbound_messages_total",
			Help:      "Inbound chat events by handling outcome",
		}, []string{"outcome"}),
		turns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Handled turns by the conversation mode they ended in",
		}, []string{"mode"}),
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "lookups_total",
			Help:      "Tracking lookups by kind and failure reason (empty on success)",
		}, []string{"kind", "reason"}),
		lookupDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "lookup_duration_seconds",
			Help:      "Tracking lookup duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"kind"}),
		alerts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "operator_alerts_total",
			Help:      "System alerts sent to the alert identity",
		}),
		handoffs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "handoffs_total",
			Help:      "Attendant handoff notices sent",
		}),
		housekeeping: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "housekeeping",
			Name:      "rows_affected_total",
			Help:      "Rows changed by housekeeping jobs",
		}, []string{"job"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Dashboard API requests by status code",
		}, []string{"method", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Inbound(outcome string) {
	if m == nil {
		return
	}
	m.inbound.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Turn(mode string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(mode).Inc()
}

// Lookup records one tracking lookup. reason is empty for successes.
func (m *Metrics) Lookup(kind, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(kind, reason).Inc()
	m.lookupDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) Alert() {
	if m == nil {
		return
	}
	m.alerts.Inc()
}

func (m *Metrics) Handoff() {
	if m == nil {
		return
	}
	m.handoffs.Inc()
}

func (m *Metrics) Housekeeping(job string, rows int64) {
	if m == nil {
		return
	}
	m.housekeeping.WithLabelValues(job).Add(float64(rows))
}

func (m *Metrics) HTTPRequest(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, http.StatusText(status)).Inc()
}
