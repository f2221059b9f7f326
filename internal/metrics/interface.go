package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRecordsUpserted()
	IncStatQueries()
	ObserveAggregationDuration(seconds float64)
	ObserveProcessingDuration(seconds float64)
	IncUploadsSucceeded()
	IncUploadsFailed()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(seconds float64)
}
