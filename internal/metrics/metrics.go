// Package metrics exposes Prometheus collectors for the extraction pipeline
// and the match endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "glossary"

// Metrics holds the application's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	pipelineBatches   *prometheus.CounterVec
	termsAdded        *prometheus.CounterVec
	droppedRecords    prometheus.Counter
	enrichmentLatency *prometheus.HistogramVec
	matchRequests     *prometheus.CounterVec
	matchesPerRequest prometheus.Histogram
}

// New creates the collectors and registers them together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pipelineBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "batches_total",
			Help:      "Enrichment batches processed, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		termsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "terms_added_total",
			Help:      "Glossary terms appended or upgraded, by mode.",
		}, []string{"mode"}),
		droppedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "dropped_records_total",
			Help:      "Parsed enrichment records dropped for lacking a word.",
		}),
		enrichmentLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "enrichment_duration_seconds",
			Help:      "Latency of enrichment service calls.",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"provider"}),
		matchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matcher",
			Name:      "requests_total",
			Help:      "Match requests served, by term source.",
		}, []string{"source"}),
		matchesPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matcher",
			Name:      "matches_per_request",
			Help:      "Number of terms returned per match request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 50, 100},
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pipelineBatches,
		m.termsAdded,
		m.droppedRecords,
		m.enrichmentLatency,
		m.matchRequests,
		m.matchesPerRequest,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBatch counts one pipeline batch.
func (m *Metrics) ObserveBatch(mode, outcome string) {
	m.pipelineBatches.WithLabelValues(mode, outcome).Inc()
}

// AddTerms counts glossary terms added by the pipeline.
func (m *Metrics) AddTerms(mode string, n int) {
	if n > 0 {
		m.termsAdded.WithLabelValues(mode).Add(float64(n))
	}
}

// AddDropped counts enrichment records dropped for lacking a word.
func (m *Metrics) AddDropped(n int) {
	if n > 0 {
		m.droppedRecords.Add(float64(n))
	}
}

// ObserveEnrichment records the latency of one enrichment call.
func (m *Metrics) ObserveEnrichment(provider string, d time.Duration) {
	m.enrichmentLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveMatch counts one match request and its result size.
func (m *Metrics) ObserveMatch(source string, matches int) {
	m.matchRequests.WithLabelValues(source).Inc()
	m.matchesPerRequest.Observe(float64(matches))
}
