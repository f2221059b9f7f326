package notifier

import (
	"sync"

	"github.com/anthlasserre/perf-tracker-api/internal/club"
	"github.com/anthlasserre/perf-tracker-api/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchRecordedFunc func(rec *match.Record, dryRun bool) error
	SendVideoUploadedFunc func(rec *match.Record, dryRun bool) error
	SendInvitationFunc    func(inv *club.Invitation, clubName string, dryRun bool) error

	// Call records
	SendMatchRecordedCalls []struct{ Record *match.Record }
	SendVideoUploadedCalls []struct{ Record *match.Record }
	SendInvitationCalls    []struct {
		Invitation *club.Invitation
		ClubName   string
	}
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRecordedCalls = nil
	m.SendVideoUploadedCalls = nil
	m.SendInvitationCalls = nil
}

func (m *Mock) SendMatchRecorded(rec *match.Record, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRecordedCalls = append(m.SendMatchRecordedCalls, struct{ Record *match.Record }{rec})
	if m.SendMatchRecordedFunc != nil {
		return m.SendMatchRecordedFunc(rec, dryRun)
	}
	return nil
}

func (m *Mock) SendVideoUploaded(rec *match.Record, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendVideoUploadedCalls = append(m.SendVideoUploadedCalls, struct{ Record *match.Record }{rec})
	if m.SendVideoUploadedFunc != nil {
		return m.SendVideoUploadedFunc(rec, dryRun)
	}
	return nil
}

func (m *Mock) SendInvitation(inv *club.Invitation, clubName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInvitationCalls = append(m.SendInvitationCalls, struct {
		Invitation *club.Invitation
		ClubName   string
	}{inv, clubName})
	if m.SendInvitationFunc != nil {
		return m.SendInvitationFunc(inv, clubName, dryRun)
	}
	return nil
}
