package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridcert_files_validated_total",
			Help: "Total number of validated files",
		},
		[]string{"result"}, // passed or failed
	)

	diagnosticsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridcert_diagnostics_total",
			Help: "Total number of diagnostics by severity",
		},
		[]string{"severity"},
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridcert_validation_duration_seconds",
			Help:    "Duration of single file validations",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func observe(passed bool, errs, warns, infos int) {
	result := "passed"
	if !passed {
		result = "failed"
	}
	filesValidated.WithLabelValues(result).Inc()
	diagnosticsTotal.WithLabelValues("error").Add(float64(errs))
	diagnosticsTotal.WithLabelValues("warning").Add(float64(warns))
	diagnosticsTotal.WithLabelValues("info").Add(float64(infos))
}

// WriteMetrics writes the process metrics to path in the Prometheus text
// format, for the node exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
