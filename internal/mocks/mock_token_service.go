package mocks

import (
	"fmt"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(user *domain.User) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate issues a token for the user
func (m *MockTokenService) Generate(user *domain.User) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(user)
	}
	// Default behavior: return a deterministic mock token
	return fmt.Sprintf("token_user_%s_%s", user.ID, user.Role), nil
}

// Validate parses a token into its claims
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: a valid visitor token
	return &domain.TokenClaims{
		UserID:    "1",
		Role:      domain.RoleVisitor,
		IssuedAt:  time.Now().Add(-time.Minute).Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

var _ domain.TokenService = (*MockTokenService)(nil)
