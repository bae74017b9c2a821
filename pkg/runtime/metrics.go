package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes runtime counters to Prometheus. All metrics are
// optional; a runtime without metrics skips instrumentation entirely.
type Metrics struct {
	flushes          prometheus.Counter
	schedules        prometheus.Counter
	componentUpdates prometheus.Counter
	storeWrites      prometheus.Counter
	outros           prometheus.Counter
	flushDuration    prometheus.Histogram
}

type metricsConfig struct {
	namespace  string
	registerer prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

// WithNamespace overrides the metric namespace (default "fray").
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) { c.namespace = ns }
}

// WithRegisterer registers the metrics somewhere other than the default
// registry. Tests pass a fresh registry here.
func WithRegisterer(r prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) { c.registerer = r }
}

// NewMetrics creates and registers the runtime metric set.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := metricsConfig{
		namespace:  "fray",
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.registerer)
	return &Metrics{
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "runtime",
			Name:      "flushes_total",
			Help:      "Total flush passes executed.",
		}),
		schedules: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "runtime",
			Name:      "schedules_total",
			Help:      "Total flush schedule requests, before coalescing.",
		}),
		componentUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "runtime",
			Name:      "component_updates_total",
			Help:      "Total component update and patch cycles.",
		}),
		storeWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "runtime",
			Name:      "store_writes_total",
			Help:      "Total accepted store writes.",
		}),
		outros: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "runtime",
			Name:      "outros_total",
			Help:      "Total exit transitions started.",
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Subsystem: "runtime",
			Name:      "flush_duration_seconds",
			Help:      "Wall time per flush pass.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
