package mocks

import (
	"context"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, name, cc, email, password string) (*domain.User, error)
	LoginFunc           func(ctx context.Context, email, password string) (*domain.Session, error)
	IsAuthenticatedFunc func(ctx context.Context, token string) bool
	ValidateSessionFunc func(ctx context.Context, token string) (*domain.Session, error)
	HasRoleFunc         func(sess *domain.Session, required domain.Role) bool
	LogoutFunc          func(ctx context.Context, token string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, name, cc, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, cc, email, password)
	}
	// Default behavior: a fresh visitor account
	return &domain.User{
		ID:        "1",
		Name:      name,
		CC:        cc,
		Email:     email,
		Role:      domain.RoleVisitor,
		CreatedAt: time.Now(),
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	now := time.Now()
	return &domain.Session{
		User:         domain.User{ID: "1", Email: email, Role: domain.RoleVisitor},
		Token:        "mock_token",
		LoginTime:    now,
		LastActivity: now,
	}, nil
}

// IsAuthenticated reports whether the token maps to a stored session
func (m *MockAuthService) IsAuthenticated(ctx context.Context, token string) bool {
	if m.IsAuthenticatedFunc != nil {
		return m.IsAuthenticatedFunc(ctx, token)
	}
	return token != ""
}

// ValidateSession validates and refreshes a session
func (m *MockAuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// HasRole reports whether the session's role satisfies the requirement
func (m *MockAuthService) HasRole(sess *domain.Session, required domain.Role) bool {
	if m.HasRoleFunc != nil {
		return m.HasRoleFunc(sess, required)
	}
	return sess.HasRole(required)
}

// Logout clears the session
func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

var _ domain.AuthService = (*MockAuthService)(nil)
