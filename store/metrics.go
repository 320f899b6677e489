package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statementCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "heritage_store_statements",
		Help: "Number of statements currently held in the graph.",
	})

	addFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heritage_store_add_failures_total",
		Help: "Statements rejected by Add.",
	})

	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "heritage_store_query_seconds",
		Help:    "Pattern query execution time.",
		Buckets: prometheus.DefBuckets,
	})

	snapshotLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heritage_store_snapshot_loads_total",
		Help: "Snapshot files loaded at startup or by the watcher.",
	}, []string{"outcome"})
)
