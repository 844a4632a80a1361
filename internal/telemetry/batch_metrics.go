package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes recorded by RowsProcessed.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeSkipped   = "skipped"
)

// BatchMetrics holds Prometheus metrics for one validation run.
// A batch run has no scrape endpoint, so metrics live on their own
// registry and are exported with WriteTextfile at the end of the run.
type BatchMetrics struct {
	Registry *prometheus.Registry

	// Rows
	RowsProcessed *prometheus.CounterVec
	OutputWrites  prometheus.Counter

	// Classification
	Classifications *prometheus.CounterVec
	ZIPPlus4Applied prometheus.Counter

	// External API performance
	ValidationLatency prometheus.Histogram
	ValidationErrors  *prometheus.CounterVec
}

// NewBatchMetrics creates and registers all batch metrics on a fresh registry.
func NewBatchMetrics(namespace string) *BatchMetrics {
	if namespace == "" {
		namespace = "addrcheck"
	}

	subsystem := "batch"
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &BatchMetrics{
		Registry: reg,

		// =======================================================================
		// Rows
		// =======================================================================
		RowsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rows_processed_total",
				Help:      "Input rows processed by outcome",
			},
			[]string{"outcome"}, // outcome: succeeded, skipped
		),
		OutputWrites: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "output_writes_total",
				Help:      "Times the output spreadsheet was rewritten",
			},
		),

		// =======================================================================
		// Classification
		// =======================================================================
		Classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "classifications_total",
				Help:      "Classified addresses by class and geocode granularity",
			},
			[]string{"class", "geocode_granularity"},
		),
		ZIPPlus4Applied: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "zip_plus4_applied_total",
				Help:      "Addresses whose final ZIP carries an inferred +4 suffix",
			},
		),

		// =======================================================================
		// External API Performance
		// =======================================================================
		ValidationLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Address Validation API call duration",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "validation_errors_total",
				Help:      "Failed validation calls by HTTP status (0 for network or decode errors)",
			},
			[]string{"status"},
		),
	}
}

// ObserveValidation records one call duration.
func (m *BatchMetrics) ObserveValidation(d time.Duration) {
	m.ValidationLatency.Observe(d.Seconds())
}

// RecordSkip counts a skipped row and the failure behind it.
func (m *BatchMetrics) RecordSkip(status int) {
	m.RowsProcessed.WithLabelValues(OutcomeSkipped).Inc()
	m.ValidationErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordSuccess counts a classified row.
func (m *BatchMetrics) RecordSuccess(class, geocodeGranularity string, zipPlus4 bool) {
	m.RowsProcessed.WithLabelValues(OutcomeSucceeded).Inc()
	m.Classifications.WithLabelValues(class, geocodeGranularity).Inc()
	if zipPlus4 {
		m.ZIPPlus4Applied.Inc()
	}
}

// WriteTextfile writes the registry in the text exposition format, for
// the node_exporter textfile collector.
func (m *BatchMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
