package container

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pbfile_records_appended_total",
		Help: "Total number of records appended to container files",
	})

	bytesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pbfile_bytes_appended_total",
		Help: "Total framed bytes appended to container files",
	})

	recordsRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pbfile_records_read_total",
		Help: "Total number of records read and validated from container files",
	})

	corruptionsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pbfile_corruption_errors_total",
		Help: "Total number of integrity check failures while reading container files",
	})
)
