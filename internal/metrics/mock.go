package metrics

import "sync"

// MockMetrics is a no-op Metrics implementation that records call counts
// for assertions in tests.
type MockMetrics struct {
	mu sync.Mutex

	RecordsUpsertedCount  int
	StatQueriesCount      int
	AggregationDurations  []float64
	ProcessingDurations   []float64
	UploadsSucceededCount int
	UploadsFailedCount    int
	NotifSentCount        int
	NotifFailedCount      int
	StartupTimes          []float64
}

var _ Metrics = (*MockMetrics)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncRecordsUpserted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsUpsertedCount++
}

func (m *MockMetrics) IncStatQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatQueriesCount++
}

func (m *MockMetrics) ObserveAggregationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregationDurations = append(m.AggregationDurations, seconds)
}

func (m *MockMetrics) ObserveProcessingDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessingDurations = append(m.ProcessingDurations, seconds)
}

func (m *MockMetrics) IncUploadsSucceeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadsSucceededCount++
}

func (m *MockMetrics) IncUploadsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadsFailedCount++
}

func (m *MockMetrics) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCount++
}

func (m *MockMetrics) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, seconds)
}
