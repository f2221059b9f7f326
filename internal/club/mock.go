package club

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mu sync.Mutex

	CreateFunc               func(c *Club) error
	GetFunc                  func(clubID string) (*Club, error)
	CreateInvitationFunc     func(inv *Invitation) error
	GetInvitationByTokenFunc func(token string) (*Invitation, error)
	AcceptInvitationFunc     func(token string, now int64) (*Invitation, error)
	RevokeInvitationFunc     func(invitationID string) error
	ListInvitationsFunc      func(clubID string) ([]Invitation, error)
	ClearFunc                func()

	CreateCalls           []*Club
	CreateInvitationCalls []*Invitation
	AcceptInvitationCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(c *Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, c)
	if m.CreateFunc != nil {
		return m.CreateFunc(c)
	}
	return nil
}

func (m *MockStore) Get(clubID string) (*Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) CreateInvitation(inv *Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateInvitationCalls = append(m.CreateInvitationCalls, inv)
	if m.CreateInvitationFunc != nil {
		return m.CreateInvitationFunc(inv)
	}
	return nil
}

func (m *MockStore) GetInvitationByToken(token string) (*Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetInvitationByTokenFunc != nil {
		return m.GetInvitationByTokenFunc(token)
	}
	return nil, nil
}

func (m *MockStore) AcceptInvitation(token string, now int64) (*Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AcceptInvitationCalls = append(m.AcceptInvitationCalls, token)
	if m.AcceptInvitationFunc != nil {
		return m.AcceptInvitationFunc(token, now)
	}
	return nil, nil
}

func (m *MockStore) RevokeInvitation(invitationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RevokeInvitationFunc != nil {
		return m.RevokeInvitationFunc(invitationID)
	}
	return nil
}

func (m *MockStore) ListInvitations(clubID string) ([]Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListInvitationsFunc != nil {
		return m.ListInvitationsFunc(clubID)
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
