package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heritage_import_records_total",
		Help: "Number of EDM records committed to the graph.",
	})
	recordsErrored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heritage_import_record_errors_total",
		Help: "Number of EDM records skipped due to per-record failures.",
	})
)
