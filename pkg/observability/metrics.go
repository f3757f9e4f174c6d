package observability

import (
	"context"
	"net/http"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the exploration collectors.
type Metrics struct {
	registry *prometheus.Registry

	StatesExpanded    prometheus.Counter
	TransfersApplied  prometheus.Counter
	StatesDuplicated  prometheus.Counter
	Limits            *prometheus.CounterVec
	SuccessorsPerStep prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StatesExpanded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "winemix_states_expanded_total",
			Help: "Total number of states whose successors were generated",
		}),
		TransfersApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "winemix_transfers_applied_total",
			Help: "Total number of valid transfers applied",
		}),
		StatesDuplicated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "winemix_states_deduplicated_total",
			Help: "Successor states that were already known",
		}),
		Limits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "winemix_exploration_limits_total",
				Help: "Explorations stopped early, by reason",
			},
			[]string{"reason"},
		),
		SuccessorsPerStep: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "winemix_successors_per_state",
			Help:    "Number of successors generated per expanded state",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	m.registry.MustRegister(
		m.StatesExpanded,
		m.TransfersApplied,
		m.StatesDuplicated,
		m.Limits,
		m.SuccessorsPerStep,
	)
	return m
}

// Registry exposes the underlying registry, e.g. for extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateExpanded: func(ctx context.Context, e *domain.ExpansionEvent) {
			m.StatesExpanded.Inc()
			m.SuccessorsPerStep.Observe(float64(e.Successors))
		},
		OnTransferApplied: func(ctx context.Context, e *domain.TransferEvent) {
			m.TransfersApplied.Inc()
			if e.Duplicate {
				m.StatesDuplicated.Inc()
			}
		},
		OnLimitReached: func(ctx context.Context, e *domain.LimitEvent) {
			m.Limits.WithLabelValues(e.Reason).Inc()
		},
	}
}
