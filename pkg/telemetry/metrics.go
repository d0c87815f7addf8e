// Package telemetry exports Prometheus metrics for update cycles and the
// preview server.
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/livetree/pkg/app"
)

// Config configures the metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "livetree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for cycle duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures Metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		if namespace != "" {
			c.Namespace = namespace
		}
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "livetree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records update cycles. It implements app.Observer.
type Metrics struct {
	dispatches       *prometheus.CounterVec
	mounts           prometheus.Counter
	duration         prometheus.Histogram
	created          prometheus.Counter
	replaced         prometheus.Counter
	moved            prometheus.Counter
	removed          prometheus.Counter
	lazySkips        prometheus.Counter
	listenerRenewals prometheus.Counter
	previewClients   prometheus.Gauge
}

var _ app.Observer = (*Metrics)(nil)

// New registers the metrics with the configured registry.
//
// Metrics collected:
//   - livetree_dispatches_total: dispatched messages by status
//   - livetree_mounts_total: Attach calls
//   - livetree_dispatch_duration_seconds: cycle duration
//   - livetree_nodes_{created,replaced,moved,removed}_total: render-target work
//   - livetree_lazy_skips_total: memoized components skipped
//   - livetree_listener_renewals_total: listener lifetimes renewed
//   - livetree_preview_clients: connected preview websocket clients
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of dispatched messages",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Update cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		previewClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_clients",
			Help:        "Number of connected preview websocket clients",
			ConstLabels: config.ConstLabels,
		}),

		mounts:           counter("mounts_total", "Total number of mounts"),
		created:          counter("nodes_created_total", "Render-target nodes created"),
		replaced:         counter("nodes_replaced_total", "Nodes replaced on kind, tag or component change"),
		moved:            counter("nodes_moved_total", "Keyed nodes moved"),
		removed:          counter("nodes_removed_total", "Nodes removed from the render target"),
		lazySkips:        counter("lazy_skips_total", "Lazy components skipped because props were equal"),
		listenerRenewals: counter("listener_renewals_total", "Listener lifetimes renewed"),
	}
}

// ObserveCycle implements app.Observer.
func (m *Metrics) ObserveCycle(_ context.Context, c app.Cycle) {
	if c.Mounted {
		m.mounts.Inc()
	} else {
		status := "ok"
		if c.Err != nil {
			status = "error"
		}
		m.dispatches.WithLabelValues(status).Inc()
		m.duration.Observe(c.Duration.Seconds())
	}

	s := c.Stats
	m.created.Add(float64(s.Created))
	m.replaced.Add(float64(s.Replaced))
	m.moved.Add(float64(s.Moved))
	m.removed.Add(float64(s.Removed))
	m.lazySkips.Add(float64(s.LazySkips))
	m.listenerRenewals.Add(float64(s.ListenerRenewals))
}

// ClientConnected records a preview client connecting.
func (m *Metrics) ClientConnected() { m.previewClients.Inc() }

// ClientDisconnected records a preview client leaving.
func (m *Metrics) ClientDisconnected() { m.previewClients.Dec() }
