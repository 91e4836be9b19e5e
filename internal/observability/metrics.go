package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "strata_scan_seconds",
		Help:    "Time spent on a full tree scan.",
		Buckets: prometheus.DefBuckets,
	})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strata_files_scanned",
		Help: "Number of files covered by the last scan.",
	})

	FunctionsDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strata_functions_total",
		Help: "Number of functions in the global table after the last scan.",
	})

	DependencyEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strata_dependency_edges_total",
		Help: "Number of filtered dependency edges after the last scan.",
	})

	LevelCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strata_levels_total",
		Help: "Number of distinct dependency levels in the last scan.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_watcher_batches_total",
		Help: "Total number of debounced change batches received from the watcher.",
	})

	ScanErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_scan_errors_total",
		Help: "Total number of scans aborted by an error.",
	})

	NestedNoticesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_nested_notices_total",
		Help: "Total number of nested-declaration notices emitted.",
	})
)
