package processor

import (
	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/anthlasserre/perf-tracker-api/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	ForProcessing() ([]*match.Record, error)
	UpdateProcessingStatus(recordID string, status match.ProcessingStatus) error
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
