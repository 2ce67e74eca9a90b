// Package observability holds the Prometheus instrumentation shared across
// the client and service layers.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors the application records against.
type Metrics struct {
	GeocodeRequests *prometheus.CounterVec
	PlacesRequests  *prometheus.CounterVec
	StoreMutations  *prometheus.CounterVec
	Reconciliations prometheus.Counter
	ActiveMarkers   prometheus.Gauge
}

// NewMetrics registers all collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GeocodeRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "placemap_geocode_requests_total",
			Help: "Geocoding requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		PlacesRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "placemap_places_requests_total",
			Help: "Place search requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		StoreMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "placemap_store_mutations_total",
			Help: "Location store mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Reconciliations: factory.NewCounter(prometheus.CounterOpts{
			Name: "placemap_marker_reconciliations_total",
			Help: "Completed marker registry reconciliation passes.",
		}),
		ActiveMarkers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "placemap_active_markers",
			Help: "Markers currently attached to the map surface.",
		}),
	}
}

// NewMetricsForTesting returns collectors on a private registry so tests
// never collide on metric names.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// Outcome labels for the request and mutation counters.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)
