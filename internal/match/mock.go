package match

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertFunc                 func(rec *Record) error
	GetFunc                    func(recordID string) (*Record, error)
	ByPlayerFunc               func(playerID string, order Order, limit int) ([]*Record, error)
	ByClubFunc                 func(clubID string) ([]*Record, error)
	AttachVideoFunc            func(recordID, key, url string) error
	ForProcessingFunc          func() ([]*Record, error)
	UpdateProcessingStatusFunc func(recordID string, status ProcessingStatus) error
	DeleteFunc                 func(recordID string)
	ClearFunc                  func()

	// Call records
	UpsertCalls      []*Record
	AttachVideoCalls []struct {
		RecordID string
		Key      string
		URL      string
	}
	UpdateProcessingStatusCalls []struct {
		RecordID string
		Status   ProcessingStatus
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = nil
	m.AttachVideoCalls = nil
	m.UpdateProcessingStatusCalls = nil
}

func (m *MockStore) Upsert(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = append(m.UpsertCalls, rec)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(rec)
	}
	return nil
}

func (m *MockStore) Get(recordID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(recordID)
	}
	return nil, nil
}

func (m *MockStore) ByPlayer(playerID string, order Order, limit int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ByPlayerFunc != nil {
		return m.ByPlayerFunc(playerID, order, limit)
	}
	return nil, nil
}

func (m *MockStore) ByClub(clubID string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ByClubFunc != nil {
		return m.ByClubFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) AttachVideo(recordID, key, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AttachVideoCalls = append(m.AttachVideoCalls, struct {
		RecordID string
		Key      string
		URL      string
	}{recordID, key, url})
	if m.AttachVideoFunc != nil {
		return m.AttachVideoFunc(recordID, key, url)
	}
	return nil
}

func (m *MockStore) ForProcessing() ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForProcessingFunc != nil {
		return m.ForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(recordID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		RecordID string
		Status   ProcessingStatus
	}{recordID, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(recordID, status)
	}
	return nil
}

func (m *MockStore) Delete(recordID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFunc != nil {
		m.DeleteFunc(recordID)
	}
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
