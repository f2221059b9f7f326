package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	RecordsUpserted     prometheus.Counter
	StatQueries         prometheus.Counter
	AggregationDuration prometheus.Histogram
	ProcessingDuration  prometheus.Histogram
	UploadsSucceeded    prometheus.Counter
	UploadsFailed       prometheus.Counter
	NotifSent           prometheus.Counter
	NotifFailed         prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
