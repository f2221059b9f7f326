package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RecordsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rugby_match_records_upserted_total",
			Help: "The total number of match records written to the store.",
		}),
		StatQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rugby_stat_queries_total",
			Help: "The total number of aggregation queries served.",
		}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rugby_aggregation_duration_seconds",
			Help:    "The duration of individual stat aggregations.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rugby_record_processing_duration_seconds",
			Help:    "The duration of processing a single match record through the pipeline.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UploadsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rugby_video_uploads_total",
			Help: "The total number of match videos successfully uploaded.",
		}),
		UploadsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rugby_video_uploads_failed_total",
			Help: "The total number of match video uploads that failed.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rugby_notifications_sent_total",
			Help: "The total number of club feed notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rugby_notifications_failed_total",
			Help: "The total number of club feed notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rugby_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RecordsUpserted,
		s.StatQueries,
		s.AggregationDuration,
		s.ProcessingDuration,
		s.UploadsSucceeded,
		s.UploadsFailed,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRecordsUpserted() {
	s.RecordsUpserted.Inc()
}

func (s *Service) IncStatQueries() {
	s.StatQueries.Inc()
}

func (s *Service) ObserveAggregationDuration(seconds float64) {
	s.AggregationDuration.Observe(seconds)
}

func (s *Service) ObserveProcessingDuration(seconds float64) {
	s.ProcessingDuration.Observe(seconds)
}

func (s *Service) IncUploadsSucceeded() {
	s.UploadsSucceeded.Inc()
}

func (s *Service) IncUploadsFailed() {
	s.UploadsFailed.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
