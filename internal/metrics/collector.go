// Package metrics exposes Prometheus instruments for the slug pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests and multiple servers in one
// process do not collide on the default one.
type Collector struct {
	registry *prometheus.Registry

	backendAttempts *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec
	uploads         *prometheus.CounterVec
	uploadSize      prometheus.Histogram
}

// NewCollector registers the slug generator instruments under namespace.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		backendAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_attempts_total",
				Help:      "Image backend attempts by backend and outcome",
			},
			[]string{"backend", "outcome"},
		),
		backendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_request_duration_seconds",
				Help:      "Duration of image backend calls in seconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"backend"},
		),
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Completed fallback chains by winning backend and outcome",
			},
			[]string{"backend", "outcome"},
		),
		uploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Uploads received by result",
			},
			[]string{"result"},
		),
		uploadSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upload_size_bytes",
				Help:      "Size of accepted uploads in bytes",
				Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6),
			},
		),
	}
}

// ObserveAttempt counts one backend attempt. Skipped backends have no
// duration and are not added to the histogram.
func (c *Collector) ObserveAttempt(backend, outcome string, elapsed time.Duration) {
	c.backendAttempts.WithLabelValues(backend, outcome).Inc()
	if elapsed > 0 {
		c.backendDuration.WithLabelValues(backend).Observe(elapsed.Seconds())
	}
}

// ObserveGeneration counts a finished fallback chain.
func (c *Collector) ObserveGeneration(backend, outcome string) {
	if backend == "" {
		backend = "none"
	}
	c.generations.WithLabelValues(backend, outcome).Inc()
}

// ObserveUpload counts an upload by result and records the size of accepted ones.
func (c *Collector) ObserveUpload(result string, size int) {
	c.uploads.WithLabelValues(result).Inc()
	if result == "accepted" {
		c.uploadSize.Observe(float64(size))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
