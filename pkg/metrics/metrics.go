package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of the sweep analysis
// service.
type Collector struct {
	gatherer prometheus.Gatherer

	SweepsProcessed *prometheus.CounterVec
	SweepDuration   prometheus.Histogram
	SweepPoints     prometheus.Gauge
}

// NewCollector registers the sweep metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	sweeps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeps_processed_total",
		Help: "Total number of analyzed sweeps, labeled by outcome.",
	}, []string{"status"})
	if err := register(reg, sweeps, func(c prometheus.Collector) { sweeps = c.(*prometheus.CounterVec) }); err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweep_processing_duration_seconds",
		Help:    "Sweep analysis latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
	if err := register(reg, duration, func(c prometheus.Collector) { duration = c.(prometheus.Histogram) }); err != nil {
		return nil, err
	}

	points := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sweep_points",
		Help: "Number of frequency points in the most recent sweep.",
	})
	if err := register(reg, points, func(c prometheus.Collector) { points = c.(prometheus.Gauge) }); err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		SweepsProcessed: sweeps,
		SweepDuration:   duration,
		SweepPoints:     points,
	}, nil
}

// register adds a collector to the registry, reusing an existing
// registration of the same metric instead of failing.
func register(reg prometheus.Registerer, c prometheus.Collector, reuse func(prometheus.Collector)) error {
	err := reg.Register(c)
	if err == nil {
		return nil
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		reuse(are.ExistingCollector)
		return nil
	}
	return err
}

// ObserveSweep records the outcome of one sweep analysis.
func (c *Collector) ObserveSweep(status string, points int, d time.Duration) {
	c.SweepsProcessed.WithLabelValues(status).Inc()
	c.SweepDuration.Observe(d.Seconds())
	c.SweepPoints.Set(float64(points))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
