package notifier

import (
	"github.com/anthlasserre/perf-tracker-api/internal/club"
	"github.com/anthlasserre/perf-tracker-api/internal/match"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For freshly recorded match performances
	SendMatchRecorded(rec *match.Record, dryRun bool) error
	// For records that gained a video replay
	SendVideoUploaded(rec *match.Record, dryRun bool) error
	// For club invitations
	SendInvitation(inv *club.Invitation, clubName string, dryRun bool) error
}
