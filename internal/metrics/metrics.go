// Package metrics exposes Prometheus instrumentation for the document
// migration pipeline (internal/update), in the same Namespace/Vec/Handler
// style as an HTTP gateway's request metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpdatesTotal counts completed Updater.Update calls by outcome:
	// "applied", "noop", or "error".
	UpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boostyaml",
			Name:      "updates_total",
			Help:      "Total number of document updates, by outcome.",
		},
		[]string{"result"},
	)

	// UpdateDuration observes the wall-clock duration of a full
	// Updater.Update call, in seconds.
	UpdateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "boostyaml",
			Name:      "update_duration_seconds",
			Help:      "Duration of a document update pass in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// VersionsTraversed counts version steps walked across all update
	// pipeline runs.
	VersionsTraversed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boostyaml",
			Name:      "versions_traversed_total",
			Help:      "Total number of version steps walked by the update pipeline.",
		},
	)

	// RelocationsApplied counts the relocation pairs listed for every
	// version the update pipeline walks, across all runs; a pair whose
	// source route is absent (and so moves nothing) is counted too.
	RelocationsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boostyaml",
			Name:      "relocations_applied_total",
			Help:      "Total number of relocation pairs processed for walked versions.",
		},
	)

	// MergeKeysWritten counts the number of keys present in the result tree
	// of every Merge call performed by an Updater.
	MergeKeysWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boostyaml",
			Name:      "merge_keys_written_total",
			Help:      "Total number of keys present in merge results.",
		},
	)
)

func init() {
	prometheus.MustRegister(UpdatesTotal, UpdateDuration, VersionsTraversed, RelocationsApplied, MergeKeysWritten)
}

// Handler returns the Prometheus metrics HTTP handler, for embedding
// applications that expose a /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
