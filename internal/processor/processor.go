package processor

import (
	"time"

	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/anthlasserre/perf-tracker-api/internal/metrics"
	"github.com/anthlasserre/perf-tracker-api/internal/pubsub"
	"github.com/charmbracelet/log"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.Client) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessRecords fetches match records that need processing and advances them
// through the state machine.
func (p *Processor) ProcessRecords(dryRun bool) {
	log.Info("Starting record processing...")
	records, err := p.store.ForProcessing()
	if err != nil {
		log.Error("Failed to get records for processing", "error", err)
		return
	}

	if len(records) == 0 {
		log.Info("No records to process.")
		return
	}

	log.Info("Found records to process", "count", len(records))
	for _, rec := range records {
		startTime := time.Now()
		p.processRecord(rec, dryRun)
		p.metrics.ObserveProcessingDuration(time.Since(startTime).Seconds())
	}
	log.Info("Record processing finished.")
}

func (p *Processor) processRecord(rec *match.Record, dryRun bool) {
	log.Info("Processing record", "recordID", rec.ID, "initial_status", rec.ProcessingStatus)
	for {
		currentState := rec.ProcessingStatus
		log.Debug("Evaluating record state", "recordID", rec.ID, "status", currentState)

		switch currentState {
		case match.StatusNew:
			recorded := time.Unix(rec.CreatedAt, 0)
			// Records older than a day are backfills, not news. Advance them
			// silently so historic imports don't flood the channel.
			if time.Since(recorded) < 24*time.Hour {
				log.Info("Record is new. Sending match recorded notification.", "recordID", rec.ID)
				if !dryRun {
					p.pubsub.SendMessage(pubsub.EventMatchRecorded, rec)
				}
				p.notifier.SendMatchRecorded(rec, dryRun)
			} else {
				log.Info("Record is older than a day. Skipping notification.", "recordID", rec.ID)
			}
			p.updateStatus(rec, match.StatusNotified, dryRun)

		case match.StatusNotified:
			if rec.VideoURL == "" {
				// Nothing more to do until a video shows up.
				return
			}
			log.Info("Record has a video. Sending video notification.", "recordID", rec.ID)
			p.notifier.SendVideoUploaded(rec, dryRun)
			p.updateStatus(rec, match.StatusCompleted, dryRun)

		case match.StatusCompleted:
			log.Debug("Record is complete. No further processing needed.", "recordID", rec.ID)
			return // End of the line for this record

		default:
			log.Warn("Unknown processing status", "status", currentState, "recordID", rec.ID)
			return // Exit if status is unknown
		}

		// If the status hasn't changed, we're done with this record for now.
		if rec.ProcessingStatus == currentState {
			log.Debug("Record state did not change. Finished processing for now.", "recordID", rec.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing record", "recordID", rec.ID, "final_status", rec.ProcessingStatus)
}

func (p *Processor) updateStatus(rec *match.Record, newStatus match.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update record status", "recordID", rec.ID, "from", rec.ProcessingStatus, "to", newStatus)
		rec.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(rec.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "recordID", rec.ID)
	} else {
		log.Debug("Successfully updated status", "recordID", rec.ID, "from", rec.ProcessingStatus, "to", newStatus)
		rec.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
