package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transportledger",
		Subsystem: "indexer",
		Name:      "flush_total",
		Help:      "Count of archive batch flushes.",
	}, []string{"table", "status"})

	indexerFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "transportledger",
		Subsystem: "indexer",
		Name:      "flush_duration_seconds",
		Help:      "Duration of archive batch flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"table", "status"})

	indexerFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "transportledger",
		Subsystem: "indexer",
		Name:      "flush_size",
		Help:      "Number of rows flushed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"table"})

	indexerBackfillTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transportledger",
		Subsystem: "indexer",
		Name:      "backfill_tokens_total",
		Help:      "Count of tokens re-synced by the startup backfill.",
	}, []string{"status"})
)

// Indexer tracks metrics for the archive indexer pipeline.
type Indexer struct{}

// NewIndexer constructs an Indexer metrics collector.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// ObserveFlush records a batch flush outcome per destination table.
func (m Indexer) ObserveFlush(table string, err error, rows int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerFlushTotal.WithLabelValues(table, status).Inc()
	indexerFlushDuration.WithLabelValues(table, status).Observe(time.Since(started).Seconds())
	indexerFlushSize.WithLabelValues(table).Observe(float64(rows))
}

// ObserveBackfillToken records one token processed during startup backfill.
func (m Indexer) ObserveBackfillToken(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerBackfillTotal.WithLabelValues(status).Inc()
}
