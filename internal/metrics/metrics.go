// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FileOperations counts flat-file reads and writes by file name, operation and result
	FileOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "investa",
		Name:      "file_operations_total",
		Help:      "Flat-file store operations.",
	}, []string{"file", "op", "result"})

	// RecordsDropped counts malformed lines skipped during lenient loads
	RecordsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "investa",
		Name:      "records_dropped_total",
		Help:      "Malformed records skipped while loading a store.",
	}, []string{"store"})

	// RiskScores observes every computed portfolio risk score
	RiskScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "investa",
		Name:      "risk_score",
		Help:      "Computed portfolio risk scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})

	// HTTPRequests counts API requests by method and status code
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "investa",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "status"})

	// BackupRuns counts backup attempts by result
	BackupRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "investa",
		Name:      "backup_runs_total",
		Help:      "Backup uploads attempted.",
	}, []string{"result"})
)

// Collectors returns every collector owned by this package
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{FileOperations, RecordsDropped, RiskScores, HTTPRequests, BackupRuns}
}

// Register registers all collectors, tolerating repeated registration
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Result maps an error to the "result" label value
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
