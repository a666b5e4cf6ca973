// Package metrics exposes Prometheus metrics for edit sessions.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resource_editor"

var (
	// SessionsActive is the number of open edit sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of open edit sessions.",
		},
	)

	// ModeSwitchesTotal counts mode changes by target mode and outcome (ok | parse_error).
	ModeSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_switches_total",
			Help:      "Mode switches by target mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	// SubmitsTotal counts submissions by kind, operation (create | update) and outcome.
	// outcome: success | invalid | failed | busy
	SubmitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submits_total",
			Help:      "Resource submissions by kind, operation and outcome.",
		},
		[]string{"kind", "operation", "outcome"},
	)
)

// KindLabel keeps label cardinality bounded to the typed kinds.
func KindLabel(kind string) string {
	switch k := strings.ToLower(kind); k {
	case "secret", "configmap", "persistentvolumeclaim":
		return k
	case "pvc":
		return "persistentvolumeclaim"
	default:
		return "other"
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
