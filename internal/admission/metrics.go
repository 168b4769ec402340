package admission

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the admission layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Decisions *prometheus.CounterVec
	InFlight  prometheus.Gauge
	Tokens    prometheus.Gauge
}

// NewMetrics creates and registers the admission metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Decisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lingogate",
				Subsystem: "admission",
				Name:      "decisions_total",
				Help:      "Gate decisions by gate and outcome",
			},
			[]string{"gate", "outcome"}, // gate=rate/throttle, outcome=allowed/denied
		),
		InFlight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lingogate",
				Subsystem: "admission",
				Name:      "in_flight_requests",
				Help:      "Requests currently holding a concurrency slot",
			},
		),
		Tokens: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lingogate",
				Subsystem: "admission",
				Name:      "bucket_tokens",
				Help:      "Tokens currently available in the rate-limit bucket",
			},
		),
	}
}

func (m *Metrics) recordDecision(gate, outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(gate, outcome).Inc()
}

func (m *Metrics) recordInFlight(t *Throttler) {
	if m == nil || t == nil {
		return
	}
	m.InFlight.Set(float64(t.Active()))
}

func (m *Metrics) recordTokens(rl *RateLimiter) {
	if m == nil || rl == nil {
		return
	}
	m.Tokens.Set(rl.Tokens())
}
