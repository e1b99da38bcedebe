// Package metrics provides Prometheus metrics for batmon.
// There is no HTTP endpoint; the registry is dumped to a node_exporter
// textfile after each cycle when a path is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tutu-network/batmon/internal/domain"
)

// Registry holds only batmon metrics, without the Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// ─── Battery ────────────────────────────────────────────────────────────────

// RemainingMinutes is the last runtime estimate (0 while charging).
var RemainingMinutes = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "batmon",
	Name:      "remaining_minutes",
	Help:      "Estimated remaining battery runtime in minutes.",
})

// Severity is the persisted severity band (0=critical ... 3=normal).
var Severity = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "batmon",
	Name:      "severity",
	Help:      "Persisted severity band, 0 is most severe.",
})

// Charging is 1 when the battery is not discharging.
var Charging = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "batmon",
	Name:      "charging",
	Help:      "1 when the battery is not discharging.",
})

// ─── Cycles ─────────────────────────────────────────────────────────────────

// ActionsFired counts alert commands run, by severity.
var ActionsFired = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "batmon",
	Name:      "actions_total",
	Help:      "Alert commands run, by severity.",
}, []string{"severity"})

// Cycles counts cycles by result: ok, skipped, error.
var Cycles = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "batmon",
	Name:      "cycles_total",
	Help:      "Monitor cycles by result.",
}, []string{"result"})

// ObserveState records the persisted state and the estimate behind it.
func ObserveState(st domain.State, minutes float64) {
	Severity.Set(float64(st.Severity))
	RemainingMinutes.Set(minutes)
	if st.Charging {
		Charging.Set(1)
	} else {
		Charging.Set(0)
	}
}

// WriteTextfile dumps the registry for the node_exporter textfile collector.
// No-op for an empty path.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, Registry)
}
