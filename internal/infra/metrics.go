package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the simulation's counters/gauges over Prometheus
// instead of the homegrown atomic-counter struct a smaller, dependency-
// free tool would reach for — the rest of the retrieval pack uses
// prometheus/client_golang directly for this, so the core does too.
type Metrics struct {
	TicksTotal      prometheus.Counter
	ActionsTotal    *prometheus.CounterVec // label: kind
	OutcomesTotal   *prometheus.CounterVec // label: outcome
	Acked           prometheus.Counter
	QueueDepth      prometheus.Gauge
	MirrorRestSize  prometheus.Gauge
	OrdersLive      prometheus.Gauge
	ViolationsTotal prometheus.Counter
}

// NewMetrics registers the simulation's metric set against reg. Pass
// prometheus.NewRegistry() in tests to avoid collisions with the global
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TicksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ordermanager_ticks_total",
			Help: "Number of driver-loop ticks executed.",
		}),
		ActionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ordermanager_actions_total",
			Help: "Number of actions dispatched, by kind.",
		}, []string{"kind"}),
		OutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ordermanager_outcomes_total",
			Help: "Number of action outcomes, by outcome.",
		}, []string{"outcome"}),
		Acked: factory.NewCounter(prometheus.CounterOpts{
			Name: "ordermanager_operations_acked_total",
			Help: "Number of operations acknowledged by the market.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ordermanager_throttle_queue_depth",
			Help: "Current number of operations resting in the throttle queue.",
		}),
		MirrorRestSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ordermanager_market_mirror_size",
			Help: "Current number of operations resting in the market mirror.",
		}),
		OrdersLive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ordermanager_orders_live",
			Help: "Current number of non-finalised orders in the book.",
		}),
		ViolationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ordermanager_invariant_violations_total",
			Help: "Number of invariant violations that aborted the process.",
		}),
	}
}
