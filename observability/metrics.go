package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded per entry.
const (
	LookupOK       = "ok"
	LookupFailed   = "failed"
	LookupEmpty    = "empty"
	LookupFallback = "fallback"
)

// Geocode outcomes.
const (
	GeocodeResolved = "resolved"
	GeocodeNoMatch  = "no_match"
	GeocodeError    = "error"
)

// Metrics holds the counters and gauges of one pipeline run. Each run gets
// its own registry so repeated runs (and tests) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	// EntriesProcessed counts bibliography entries resolved.
	EntriesProcessed prometheus.Counter

	// Lookups counts metadata lookups by source and outcome.
	Lookups *prometheus.CounterVec

	// Geocodes counts geocoder calls by provider and outcome.
	Geocodes *prometheus.CounterVec

	// GeocodeCache counts memoized geocoding lookups by result (hit, miss).
	GeocodeCache *prometheus.CounterVec

	// GraphNodes, GraphEdges and GraphUnplaced describe the final graph.
	GraphNodes    prometheus.Gauge
	GraphEdges    prometheus.Gauge
	GraphUnplaced prometheus.Gauge
}

// NewMetrics creates and registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		EntriesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "affilnet",
			Name:      "entries_processed_total",
			Help:      "Bibliography entries resolved.",
		}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "affilnet",
			Name:      "affiliation_lookups_total",
			Help:      "Affiliation resolutions by source and outcome.",
		}, []string{"source", "outcome"}),
		Geocodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "affilnet",
			Name:      "geocode_requests_total",
			Help:      "Geocoder calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "affilnet",
			Name:      "geocode_cache_total",
			Help:      "Memoized geocoding lookups by result.",
		}, []string{"result"}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "affilnet",
			Name:      "graph_nodes",
			Help:      "Authors placed on the map.",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "affilnet",
			Name:      "graph_edges",
			Help:      "Co-affiliation edges.",
		}),
		GraphUnplaced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "affilnet",
			Name:      "graph_unplaced_authors",
			Help:      "Authors without a resolved coordinate.",
		}),
	}

	m.Registry.MustRegister(
		m.EntriesProcessed,
		m.Lookups,
		m.Geocodes,
		m.GeocodeCache,
		m.GraphNodes,
		m.GraphEdges,
		m.GraphUnplaced,
	)
	return m
}

// WriteTextfile writes the registry in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
