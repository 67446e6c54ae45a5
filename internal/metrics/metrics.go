// Package metrics records installation runs as Prometheus metrics by
// observing orchestrator events. A CLI run exports them once, as a
// node_exporter textfile.
package metrics

import (
	"github.com/druarnfield/mcp11/internal/events"
	"github.com/druarnfield/mcp11/internal/orchestrator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the installation metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	servers      *prometheus.CounterVec
	errors       *prometheus.CounterVec
	rollbacks    prometheus.Counter
	runDuration  prometheus.Histogram
	progress     prometheus.Gauge
	lastRunStamp prometheus.Gauge
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp11_install_runs_total",
				Help: "Total number of installation runs by outcome",
			},
			[]string{"outcome"},
		),
		servers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp11_servers_total",
				Help: "Total number of server installs by status",
			},
			[]string{"status"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp11_install_errors_total",
				Help: "Total number of installation errors by code",
			},
			[]string{"code"},
		),
		rollbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mcp11_rollbacks_total",
				Help: "Total number of rollbacks started",
			},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mcp11_install_duration_seconds",
				Help:    "Installation run duration in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
			},
		),
		progress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcp11_install_progress_ratio",
				Help: "Progress of the current installation run",
			},
		),
		lastRunStamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcp11_last_run_timestamp_seconds",
				Help: "Unix time the last installation run finished",
			},
		),
	}
}

// Observe is an events.Handler; subscribe it to the orchestrator.
func (c *Collector) Observe(ev events.Event) {
	switch data := ev.Data.(type) {
	case orchestrator.ProgressPayload:
		c.progress.Set(data.Fraction)

	case orchestrator.Result:
		outcome := "success"
		if !data.Success {
			outcome = "failure"
		}
		c.runs.WithLabelValues(outcome).Inc()
		c.servers.WithLabelValues("installed").Add(float64(len(data.InstalledServers)))
		c.servers.WithLabelValues("failed").Add(float64(len(data.FailedServers)))
		for _, e := range data.Errors {
			c.errors.WithLabelValues(string(e.Code)).Inc()
		}
		c.runDuration.Observe(data.Duration.Seconds())
		c.lastRunStamp.Set(float64(ev.Timestamp.Unix()))

	case orchestrator.FailurePayload:
		c.runs.WithLabelValues("aborted").Inc()
		c.errors.WithLabelValues(string(data.Error.Code)).Inc()
		c.lastRunStamp.Set(float64(ev.Timestamp.Unix()))

	case orchestrator.RollbackPayload:
		c.rollbacks.Inc()
	}
}

// Registry exposes the underlying registry for gathering.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
