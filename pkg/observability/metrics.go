package observability

import (
	"context"

	"github.com/aretw0/circuit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Traces          *prometheus.CounterVec
	ActiveResistors prometheus.Gauge
	SwitchMoves     *prometheus.CounterVec
	ShortCircuit    prometheus.Gauge
	Malformed       prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_traces_total",
				Help: "Total number of completed traces",
			},
			[]string{"classification", "reason"},
		),
		ActiveResistors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circuit_active_resistors",
			Help: "Resistors energized by the last trace",
		}),
		SwitchMoves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_switch_moves_total",
				Help: "Total number of switch position requests",
			},
			[]string{"switch_id"},
		),
		ShortCircuit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circuit_short_circuit",
			Help: "1 while the short-circuit indicator is on",
		}),
		Malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circuit_malformed_traces_total",
			Help: "Traces whose walk revisited a terminal or exceeded the depth cap",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Traces, m.ActiveResistors, m.SwitchMoves, m.ShortCircuit, m.Malformed)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(_ context.Context, e *domain.TraceEvent) {
			m.Traces.WithLabelValues(string(e.Classification), string(e.Reason)).Inc()
			if e.Malformed {
				m.Malformed.Inc()
			}
			if e.Classification == domain.ClassificationClosed {
				m.ActiveResistors.Set(float64(len(e.Resistors)))
			} else {
				m.ActiveResistors.Set(0)
			}
		},
		OnSwitchPosition: func(_ context.Context, e *domain.SwitchEvent) {
			m.SwitchMoves.WithLabelValues(e.ComponentID).Inc()
		},
		OnShortCircuit: func(_ context.Context, e *domain.ShortCircuitEvent) {
			if e.Active {
				m.ShortCircuit.Set(1)
			} else {
				m.ShortCircuit.Set(0)
			}
		},
	}
}
