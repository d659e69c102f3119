package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the engine's Prometheus metrics on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	runs             *prometheus.CounterVec
	runDuration      prometheus.Histogram
	suggestions      *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
	predictions      prometheus.Counter
	httpRequests     *prometheus.HistogramVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "menuintel",
				Name:      "suggestion_runs_total",
				Help:      "Optimization runs by result",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "menuintel",
				Name:      "suggestion_run_duration_seconds",
				Help:      "Wall time of one optimization run",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),
		suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "menuintel",
				Name:      "suggestions_generated_total",
				Help:      "Suggestions emitted by type and impact",
			},
			[]string{"type", "impact"},
		),
		upstreamFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "menuintel",
				Name:      "upstream_failures_total",
				Help:      "Store or weather calls that failed after retries",
			},
			[]string{"operation"},
		),
		predictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "menuintel",
				Name:      "demand_predictions_total",
				Help:      "Demand predictions served",
			},
		),
		httpRequests: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "menuintel",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		c.runs,
		c.runDuration,
		c.suggestions,
		c.upstreamFailures,
		c.predictions,
		c.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) ObserveRun(started time.Time, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.runs.WithLabelValues(result).Inc()
	c.runDuration.Observe(time.Since(started).Seconds())
}

func (c *Collector) SuggestionEmitted(kind, impact string) {
	if c == nil {
		return
	}
	c.suggestions.WithLabelValues(kind, impact).Inc()
}

func (c *Collector) UpstreamFailed(operation string) {
	if c == nil {
		return
	}
	c.upstreamFailures.WithLabelValues(operation).Inc()
}

func (c *Collector) DemandPredicted() {
	if c == nil {
		return
	}
	c.predictions.Inc()
}

func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
