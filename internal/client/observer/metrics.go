package observer

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
)

const metricsNamespace = "quotesync"

// Metrics holds the Prometheus instruments for sync outcomes
type Metrics struct {
	registry     *prometheus.Registry
	passes       *prometheus.CounterVec
	actions      *prometheus.CounterVec
	resolutions  *prometheus.CounterVec
	passDuration prometheus.Histogram
	pending      prometheus.Gauge
	lastSuccess  prometheus.Gauge
}

// NewMetrics creates the instruments on a dedicated registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sync_passes_total",
			Help:      "Number of sync passes by outcome.",
		}, []string{"policy", "outcome"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sync_actions_total",
			Help:      "Number of per-record sync actions by type and outcome.",
		}, []string{"type", "outcome"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "conflict_resolutions_total",
			Help:      "Number of conflict resolutions by choice and outcome.",
		}, []string{"choice", "outcome"}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sync_pass_duration_seconds",
			Help:      "Duration of sync passes in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "conflicts_pending",
			Help:      "Number of conflicts awaiting resolution.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_successful_pass_timestamp_seconds",
			Help:      "Unix time of the last sync pass that was not aborted.",
		}),
	}

	m.registry.MustRegister(m.passes, m.actions, m.resolutions, m.passDuration, m.pending, m.lastSuccess)
	return m
}

// Handler returns the /metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OnPass records a pass outcome
func (m *Metrics) OnPass(result *sync.PassResult, state conflicts.State) {
	m.pending.Set(float64(state.Len()))

	if result.Failed() {
		m.passes.WithLabelValues(result.Policy.String(), "failed").Inc()
		return
	}

	m.passes.WithLabelValues(result.Policy.String(), "ok").Inc()
	m.passDuration.Observe(result.Duration().Seconds())
	m.lastSuccess.Set(float64(result.FinishedAt.Unix()))

	for _, a := range result.Actions {
		outcome := "ok"
		if a.Failed() {
			outcome = "failed"
		}
		m.actions.WithLabelValues(string(a.Type), outcome).Inc()
	}
	if result.NewConflicts > 0 {
		m.actions.WithLabelValues("conflict", "queued").Add(float64(result.NewConflicts))
	}
}

// OnResolution records a resolution outcome
func (m *Metrics) OnResolution(result *sync.ResolutionResult, state conflicts.State) {
	m.pending.Set(float64(state.Len()))

	choice := result.Choice.String()
	if len(result.Resolved) > 0 {
		m.resolutions.WithLabelValues(choice, "ok").Add(float64(len(result.Resolved)))
	}
	if len(result.Failed) > 0 {
		m.resolutions.WithLabelValues(choice, "failed").Add(float64(len(result.Failed)))
	}
	if result.Cleared > 0 {
		m.resolutions.WithLabelValues(choice, "ok").Add(float64(result.Cleared))
	}
}
