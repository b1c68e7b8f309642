// Package metrics holds the prometheus collectors for the query layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesServedCounter counts pages materialized per collection.
	PagesServedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "buildgrid",
		Name:      "pages_served_total",
		Help:      "The total number of connection pages served, by collection.",
	}, []string{"collection"})

	// EdgeFailuresCounter counts node transforms that failed and were
	// reported as partial errors.
	EdgeFailuresCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "buildgrid",
		Name:      "edge_resolution_failures_total",
		Help:      "The total number of per-edge node resolution failures, by collection.",
	}, []string{"collection"})

	// DuplicatesSkippedCounter counts items a deduplicating holder withheld
	// from its processor.
	DuplicatesSkippedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "buildgrid",
		Name:      "duplicates_skipped_total",
		Help:      "The total number of duplicate candidates skipped during streaming assembly.",
	}, []string{"collection"})

	// WindowSizeHistogram observes resolved page window sizes.
	WindowSizeHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "buildgrid",
		Name:      "page_window_size",
		Help:      "The size of resolved page windows.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"collection"})
)
