// Package metrics provides Prometheus collectors for contract, repository
// and indexer operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contractOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transportledger",
		Subsystem: "contract",
		Name:      "operations_total",
		Help:      "Count of contract entry-point calls.",
	}, []string{"operation", "status"})
	contractOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "transportledger",
		Subsystem: "contract",
		Name:      "operation_duration_seconds",
		Help:      "Duration of contract entry-point calls.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation", "status"})
)

// Contract tracks metrics for contract entry-point calls.
type Contract struct{}

// NewContract creates a Contract metrics collector.
func NewContract() *Contract {
	return &Contract{}
}

// Observe records duration and status of a contract operation. Reverts count
// as errors; the reason is not a label to keep cardinality flat.
func (m Contract) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	contractOperationsTotal.WithLabelValues(operation, status).Inc()
	contractOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
