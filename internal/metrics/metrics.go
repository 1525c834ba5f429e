// Package metrics exports introspection registry activity to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/conduit-lang/beans/runtime/introspection"
)

// DefaultNamespace is used when no namespace is configured
const DefaultNamespace = "beans"

// Collector records registry lookups and introspection builds.
type Collector struct {
	registry *prometheus.Registry

	lookups        *prometheus.CounterVec
	buildLatency   *prometheus.HistogramVec
	buildFailures  *prometheus.CounterVec
	introspections prometheus.Gauge
}

var _ introspection.Observer = (*Collector)(nil)

// NewCollector creates a collector with its own Prometheus registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "lookups_total",
			Help:      "Total number of registry lookups by result (hit, built, miss, error)",
		},
		[]string{"type", "result"},
	)

	c.buildLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "build_duration_seconds",
			Help:      "Time taken to build an introspection",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		},
		[]string{"type"},
	)

	c.buildFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "build_failures_total",
			Help:      "Total number of failed introspection builds",
		},
		[]string{"type"},
	)

	c.introspections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "introspections",
			Help:      "Number of introspections built",
		},
	)

	c.registry.MustRegister(
		c.lookups,
		c.buildLatency,
		c.buildFailures,
		c.introspections,
	)

	return c
}

// Registry returns the Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObservedLookups returns the lookup counter for a type and result.
func (c *Collector) ObservedLookups(typeName string, result introspection.LookupResult) prometheus.Counter {
	return c.lookups.WithLabelValues(typeName, string(result))
}

// Introspections returns the gauge of built introspections.
func (c *Collector) Introspections() prometheus.Gauge {
	return c.introspections
}

// ObserveLookup counts a registry lookup.
func (c *Collector) ObserveLookup(typeName string, result introspection.LookupResult) {
	c.lookups.WithLabelValues(typeName, string(result)).Inc()
}

// ObserveBuild records build latency. Successful builds raise the
// introspections gauge.
func (c *Collector) ObserveBuild(typeName string, d time.Duration, err error) {
	c.buildLatency.WithLabelValues(typeName).Observe(d.Seconds())
	if err != nil {
		c.buildFailures.WithLabelValues(typeName).Inc()
		return
	}
	c.introspections.Inc()
}

// Reset clears all metrics, for use after the registry itself is reset.
func (c *Collector) Reset() {
	c.lookups.Reset()
	c.buildLatency.Reset()
	c.buildFailures.Reset()
	c.introspections.Set(0)
}
