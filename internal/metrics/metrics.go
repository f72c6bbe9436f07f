package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters of one generator or detector run. They live in
// their own registry so a batch run exposes only its own series.
type Metrics struct {
	Registry *prometheus.Registry

	rowsGenerated   *prometheus.CounterVec
	idleRuns        *prometheus.CounterVec
	variantDuration *prometheus.HistogramVec
	variantFailures *prometheus.CounterVec
	anomaliesFound  *prometheus.CounterVec
	rowsScored      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		rowsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorgen_rows_generated_total",
			Help: "Readings generated, by quantity.",
		}, []string{"quantity"}),
		idleRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorgen_idle_runs_total",
			Help: "Idle runs written into night shifts, by quantity.",
		}, []string{"quantity"}),
		variantDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sensorgen_variant_duration_seconds",
			Help:    "Time to assemble one dataset variant.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"quantity"}),
		variantFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorgen_variant_failures_total",
			Help: "Dataset variants that failed to generate.",
		}, []string{"quantity"}),
		anomaliesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorgen_anomalies_detected_total",
			Help: "Rows labelled anomalous by the detector, by quantity.",
		}, []string{"quantity"}),
		rowsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorgen_rows_scored_total",
			Help: "Rows scored by the detector, by quantity.",
		}, []string{"quantity"}),
	}

	m.Registry.MustRegister(
		m.rowsGenerated,
		m.idleRuns,
		m.variantDuration,
		m.variantFailures,
		m.anomaliesFound,
		m.rowsScored,
	)
	return m
}

func (m *Metrics) ObserveVariant(quantity string, rows, idleRuns int, elapsed time.Duration) {
	m.rowsGenerated.WithLabelValues(quantity).Add(float64(rows))
	m.idleRuns.WithLabelValues(quantity).Add(float64(idleRuns))
	m.variantDuration.WithLabelValues(quantity).Observe(elapsed.Seconds())
}

func (m *Metrics) VariantFailed(quantity string) {
	m.variantFailures.WithLabelValues(quantity).Inc()
}

func (m *Metrics) ObserveDetection(quantity string, rows, anomalies int) {
	m.rowsScored.WithLabelValues(quantity).Add(float64(rows))
	m.anomaliesFound.WithLabelValues(quantity).Add(float64(anomalies))
}

// WriteTextfile dumps the registry in the node exporter textfile format.
// Empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
