// Package metrics provides Prometheus metrics for the CRM analytics pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors for one process.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline throughput
	runsTotal             prometheus.Counter
	transactionsLoaded    prometheus.Counter
	transactionsDiscarded *prometheus.CounterVec
	customersScored       prometheus.Counter
	stageDuration         *prometheus.HistogramVec

	// Analysis results
	segmentCustomers *prometheus.GaugeVec
	churnRate        prometheus.Gauge
	datasetCustomers prometheus.Gauge
	datasetRevenue   prometheus.Gauge

	// Report server
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the stage duration histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Global manager backed by a private registry so default Go collectors
// stay out of the scrape.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "crm",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)
	m.runsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "analysis_runs_total",
		Help:      "Completed analysis runs.",
	})
	m.transactionsLoaded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "transactions_loaded_total",
		Help:      "Raw transaction lines read from the source.",
	})
	m.transactionsDiscarded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "transactions_discarded_total",
		Help:      "Transaction lines dropped by cleaning, by reason.",
	}, []string{"reason"})
	m.customersScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "customers_scored_total",
		Help:      "Customers that received RFM scores.",
	})
	m.stageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "stage_duration_seconds",
		Help:      "Wall time per pipeline stage.",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})
	m.segmentCustomers = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "segment_customers",
		Help:      "Customers per RFM segment in the latest run.",
	}, []string{"segment"})
	m.churnRate = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "churn_rate",
		Help:      "Share of customers flagged churned in the latest run.",
	})
	m.datasetCustomers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "dataset_customers",
		Help:      "Distinct customers in the cleaned dataset.",
	})
	m.datasetRevenue = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "dataset_revenue",
		Help:      "Total revenue in the cleaned dataset.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Report server requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Report server request latency by endpoint and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
	return m
}

// GetRegistry exposes the private registry for scraping.
func GetRegistry() *prometheus.Registry { return customRegistry }

// Package-level helpers over the global manager.

// RecordRun counts a completed analysis run.
func RecordRun() { globalManager.runsTotal.Inc() }

// RecordTransactionsLoaded counts raw lines read from the source.
func RecordTransactionsLoaded(n int) { globalManager.transactionsLoaded.Add(float64(n)) }

// RecordTransactionsDiscarded counts cleaned-away lines for one reason.
func RecordTransactionsDiscarded(reason string, n int) {
	if n > 0 {
		globalManager.transactionsDiscarded.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordCustomersScored counts customers that received scores.
func RecordCustomersScored(n int) { globalManager.customersScored.Add(float64(n)) }

// ObserveStageDuration records the wall time of one pipeline stage.
func ObserveStageDuration(stage string, d time.Duration) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetSegmentCustomers publishes the population of one segment.
func SetSegmentCustomers(segment string, n int) {
	globalManager.segmentCustomers.WithLabelValues(segment).Set(float64(n))
}

// SetChurnRate publishes the churn rate of the latest run.
func SetChurnRate(rate float64) { globalManager.churnRate.Set(rate) }

// SetDatasetCustomers publishes the distinct customer count.
func SetDatasetCustomers(n int) { globalManager.datasetCustomers.Set(float64(n)) }

// SetDatasetRevenue publishes the total revenue.
func SetDatasetRevenue(revenue float64) { globalManager.datasetRevenue.Set(revenue) }

// RecordHTTPRequest counts one report server request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// ObserveHTTPRequestDuration records the latency of one report server request.
func ObserveHTTPRequestDuration(endpoint, method string, d time.Duration) {
	globalManager.httpDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}
