package processor

import (
	"github.com/anthlasserre/perf-tracker-api/internal/metrics"
	"github.com/anthlasserre/perf-tracker-api/internal/pubsub"
)

// Processor handles the business logic of advancing match records through
// the notification pipeline.
type Processor struct {
	store    Store
	pubsub   pubsub.Client
	notifier Notifier
	metrics  metrics.Metrics
}
