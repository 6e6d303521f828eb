package mocks

import (
	"github.com/CamiloBytes/reportesvc/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(stored, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: reversible fake hash
	return "hashed_" + password, nil
}

// Verify checks a password against a stored hash
func (m *MockPasswordService) Verify(stored, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(stored, password)
	}
	// Default behavior: matches the fake hash scheme
	return stored == "hashed_"+password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
