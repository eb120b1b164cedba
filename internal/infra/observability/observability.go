// Package observability holds the Prometheus metrics for the journal.
//
// Metrics are registered on the default registry at init and exposed by the
// API server on /metrics when enabled in config. Record counts and failures
// are tracked per operation; classifications per category.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Journal Metrics ────────────────────────────────────────────────────────

// RecordsAdded counts records that were persisted and cached.
var RecordsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodmap",
	Subsystem: "journal",
	Name:      "records_added_total",
	Help:      "Total mood records added, by category.",
}, []string{"category"})

// RecordsDeleted counts records removed from store and cache.
var RecordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodmap",
	Subsystem: "journal",
	Name:      "records_deleted_total",
	Help:      "Total mood records deleted.",
})

// PersistenceFailures counts store errors by operation (append, fetch, delete).
var PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodmap",
	Subsystem: "journal",
	Name:      "persistence_failures_total",
	Help:      "Total journal store failures by operation.",
}, []string{"op"})

// CachedRecords tracks the size of the in-memory record cache.
var CachedRecords = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moodmap",
	Subsystem: "journal",
	Name:      "cached_records",
	Help:      "Number of mood records currently held in the journal cache.",
})

// ─── Classification Metrics ─────────────────────────────────────────────────

// Classifications counts classifier outcomes by category.
var Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodmap",
	Subsystem: "classifier",
	Name:      "classifications_total",
	Help:      "Total texts classified, by resulting category.",
}, []string{"category"})

// UnscoredInputs counts texts that fell back to Neutral without a score.
var UnscoredInputs = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodmap",
	Subsystem: "classifier",
	Name:      "unscored_inputs_total",
	Help:      "Total texts the scorer could not score.",
})

// ScorerErrors counts scorer backend failures (e.g. remote API errors).
var ScorerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodmap",
	Subsystem: "sentiment",
	Name:      "scorer_errors_total",
	Help:      "Total sentiment scorer backend failures, by provider.",
}, []string{"provider"})

// ObservePersistenceFailure records a failed store operation.
func ObservePersistenceFailure(op string) {
	PersistenceFailures.WithLabelValues(op).Inc()
}
