package player

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mu sync.Mutex

	CreateFunc             func(p *Player) error
	GetFunc                func(playerID string) (*Player, error)
	GetByEmailFunc         func(email string) (*Player, error)
	CompleteOnboardingFunc func(playerID string, profile OnboardingProfile) error
	SetClubFunc            func(playerID, clubID string) error
	ByClubFunc             func(clubID string) ([]Player, error)
	ClearFunc              func()

	CreateCalls  []*Player
	SetClubCalls []struct {
		PlayerID string
		ClubID   string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, p)
	if m.CreateFunc != nil {
		return m.CreateFunc(p)
	}
	return nil
}

func (m *MockStore) Get(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) GetByEmail(email string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	return nil, nil
}

func (m *MockStore) CompleteOnboarding(playerID string, profile OnboardingProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CompleteOnboardingFunc != nil {
		return m.CompleteOnboardingFunc(playerID, profile)
	}
	return nil
}

func (m *MockStore) SetClub(playerID, clubID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetClubCalls = append(m.SetClubCalls, struct {
		PlayerID string
		ClubID   string
	}{playerID, clubID})
	if m.SetClubFunc != nil {
		return m.SetClubFunc(playerID, clubID)
	}
	return nil
}

func (m *MockStore) ByClub(clubID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ByClubFunc != nil {
		return m.ByClubFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
