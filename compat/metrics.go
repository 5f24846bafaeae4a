package compat

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the compatibility engine's prometheus collectors. A nil
// *Metrics records nothing.
type Metrics struct {
	predicateCache   *prometheus.CounterVec
	tableLookups     *prometheus.CounterVec
	nearestFallbacks prometheus.Counter
	tableBuild       prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		predicateCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfm_compat_predicate_cache_total",
				Help: "Compatibility verdict cache lookups by result.",
			},
			[]string{"result"},
		),
		tableLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfm_compat_table_lookups_total",
				Help: "Compatibility table lookups by result.",
			},
			[]string{"result"},
		),
		nearestFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tfm_compat_nearest_fallback_total",
				Help: "Nearest-framework selections decided by the fallback order.",
			},
		),
		tableBuild: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tfm_compat_table_build_duration_seconds",
				Help:    "Time taken to precompute a compatibility table.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	for _, c := range []prometheus.Collector{m.predicateCache, m.tableLookups, m.nearestFallbacks, m.tableBuild} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering compat metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) cacheResult(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.predicateCache.WithLabelValues("hit").Inc()
	} else {
		m.predicateCache.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) lookup(found bool) {
	if m == nil {
		return
	}
	if found {
		m.tableLookups.WithLabelValues("found").Inc()
	} else {
		m.tableLookups.WithLabelValues("empty").Inc()
	}
}

func (m *Metrics) fallback() {
	if m == nil {
		return
	}
	m.nearestFallbacks.Inc()
}

func (m *Metrics) observeBuild(start time.Time) {
	if m == nil {
		return
	}
	m.tableBuild.Observe(time.Since(start).Seconds())
}
