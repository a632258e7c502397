// Package prom exposes blobcache events as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crookedfinger/crookedfinger-go/blobcache"
)

// Metrics implements blobcache.Metrics on Prometheus counters.
type Metrics struct {
	hits        prometheus.Counter
	misses      prometheus.Counter
	evictions   prometheus.Counter
	expirations prometheus.Counter
	fetchErrors prometheus.Counter
}

var _ blobcache.Metrics = (*Metrics)(nil)

// NewMetrics registers the cache counters with reg under namespace.
// Pass prometheus.DefaultRegisterer outside of tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blobcache",
			Name:      "hits_total",
			Help:      "Lookups served from the cache.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blobcache",
			Name:      "misses_total",
			Help:      "Lookups that found no live entry.",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blobcache",
			Name:      "evictions_total",
			Help:      "Entries dropped because the cache was full.",
		}),
		expirations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blobcache",
			Name:      "expirations_total",
			Help:      "Entries dropped because their TTL elapsed.",
		}),
		fetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blobcache",
			Name:      "fetch_errors_total",
			Help:      "Failed attachment downloads or materializations.",
		}),
	}
}

func (m *Metrics) Hit()        { m.hits.Inc() }
func (m *Metrics) Miss()       { m.misses.Inc() }
func (m *Metrics) Eviction()   { m.evictions.Inc() }
func (m *Metrics) Expiration() { m.expirations.Inc() }
func (m *Metrics) FetchError() { m.fetchErrors.Inc() }

// NewSizeGauge registers a gauge that tracks the live entry count of c.
func NewSizeGauge(namespace string, reg prometheus.Registerer, c *blobcache.Cache) prometheus.GaugeFunc {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "blobcache",
		Name:      "entries",
		Help:      "Current number of live cache entries.",
	}, func() float64 {
		return float64(c.Stats().Size)
	})
	reg.MustRegister(g)
	return g
}
