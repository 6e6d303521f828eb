package mocks

import (
	"context"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockSessionStore implements domain.SessionStore interface for testing
type MockSessionStore struct {
	SaveFunc   func(ctx context.Context, session *domain.Session) error
	LoadFunc   func(ctx context.Context, token string) (*domain.Session, error)
	TouchFunc  func(ctx context.Context, token string) error
	DeleteFunc func(ctx context.Context, token string) error
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Save stores a session
func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	return nil
}

// Load retrieves a session by token
func (m *MockSessionStore) Load(ctx context.Context, token string) (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Touch refreshes a session's last-activity time
func (m *MockSessionStore) Touch(ctx context.Context, token string) error {
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, token)
	}
	return nil
}

// Delete removes a session
func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}

var _ domain.SessionStore = (*MockSessionStore)(nil)
