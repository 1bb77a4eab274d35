// Package metrics exposes Prometheus metrics for the HTTP and MCP surfaces.
//
// A nil *Collector is valid and records nothing, so callers can pass nil when
// metrics are disabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stringlens"

// Natural-language query outcomes.
const (
	OutcomeParsed      = "parsed"
	OutcomeUnparseable = "unparseable"
	OutcomeMissing     = "missing"
)

// Collector owns a private registry and the stringlens metric families.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	records         prometheus.Gauge
	nlQueriesTotal  *prometheus.CounterVec
}

// NewCollector creates a collector. If registry is nil a fresh one is created
// with the Go runtime and process collectors attached.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests handled, by method, route pattern, and status code.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Number of strings currently stored.",
		}),
		nlQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nl_queries_total",
				Help:      "Natural-language queries, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(c.requestsTotal, c.requestDuration, c.records, c.nlQueriesTotal)
	return c
}

// ObserveRequest records one completed HTTP request.
// route is the matched mux pattern, not the raw path, to bound cardinality.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetRecords sets the stored-record gauge. Used once at startup; mutations
// then move it with IncRecords and DecRecords.
func (c *Collector) SetRecords(n int) {
	if c == nil {
		return
	}
	c.records.Set(float64(n))
}

// IncRecords counts one successful insert.
func (c *Collector) IncRecords() {
	if c == nil {
		return
	}
	c.records.Inc()
}

// DecRecords counts one successful delete.
func (c *Collector) DecRecords() {
	if c == nil {
		return
	}
	c.records.Dec()
}

// RecordNLQuery counts a natural-language query by outcome.
func (c *Collector) RecordNLQuery(outcome string) {
	if c == nil {
		return
	}
	c.nlQueriesTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the exposition handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
