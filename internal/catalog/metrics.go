package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates operation counters for the catalog service. All methods
// are nil-safe so a service without metrics costs nothing.
type Metrics struct {
	searches     *prometheus.CounterVec
	reservations *prometheus.CounterVec
	areaCands    prometheus.Histogram
	areaMatches  prometheus.Histogram
}

// NewMetrics registers the catalog collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nestfit",
			Name:      "catalog_searches_total",
			Help:      "Catalog searches by kind and outcome.",
		}, []string{"kind", "outcome"}),
		reservations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nestfit",
			Name:      "stock_reservations_total",
			Help:      "Stock reservation attempts by outcome.",
		}, []string{"outcome"}),
		areaCands: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nestfit",
			Name:      "area_search_candidates",
			Help:      "Bounding-box candidates per area search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		areaMatches: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nestfit",
			Name:      "area_search_matches",
			Help:      "Contained rentals per area search, after the cap.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 7),
		}),
	}
}

func (m *Metrics) searchServed(kind EntityKind) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(string(kind), "served").Inc()
}

func (m *Metrics) searchRejected(kind EntityKind) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(string(kind), "rejected").Inc()
}

func (m *Metrics) reservation(outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) areaSearch(candidates, matches int) {
	if m == nil {
		return
	}
	m.areaCands.Observe(float64(candidates))
	m.areaMatches.Observe(float64(matches))
}
