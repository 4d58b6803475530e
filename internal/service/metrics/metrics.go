// Package metrics exposes Prometheus metrics for the counting pipeline and report generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the collectors registered by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	processedTotal  *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	lastCount       prometheus.Gauge
	visitorsTotal   prometheus.Counter
	reportsTotal    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them in registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		processedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "occupancy_requests_total",
			Help: "Counting requests by media kind and outcome",
		}, []string{"kind", "outcome"}),
		processDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "occupancy_request_duration_seconds",
			Help:    "Time spent in the counting pipeline",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		lastCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "occupancy_last_count",
			Help: "Visitor count of the most recent successful request",
		}),
		visitorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "occupancy_visitors_counted_total",
			Help: "Sum of visitor counts over all successful requests",
		}),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "occupancy_reports_total",
			Help: "Generated reports by encoding and outcome",
		}, []string{"encoding", "outcome"}),
	}

	collectors := []prometheus.Collector{
		m.processedTotal,
		m.processDuration,
		m.lastCount,
		m.visitorsTotal,
		m.reportsTotal,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordProcess records one pipeline run. count is only used when outcome is "success".
func (m *Metrics) RecordProcess(kind, outcome string, count int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.processedTotal.WithLabelValues(kind, outcome).Inc()
	m.processDuration.WithLabelValues(kind).Observe(elapsed.Seconds())

	if outcome == "success" {
		m.lastCount.Set(float64(count))
		m.visitorsTotal.Add(float64(count))
	}
}

// RecordReport records one report generation attempt.
func (m *Metrics) RecordReport(encoding, outcome string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(encoding, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ReportsCounter returns the report counter for one encoding/outcome pair.
func (m *Metrics) ReportsCounter(encoding, outcome string) prometheus.Counter {
	return m.reportsTotal.WithLabelValues(encoding, outcome)
}
