package mocks

import (
	"context"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockBarrioRepository implements domain.BarrioRepository interface for testing
type MockBarrioRepository struct {
	ListFunc func(ctx context.Context) ([]domain.Barrio, error)
}

// NewMockBarrioRepository creates a new MockBarrioRepository with default behaviors
func NewMockBarrioRepository() *MockBarrioRepository {
	return &MockBarrioRepository{}
}

// List returns the neighborhoods
func (m *MockBarrioRepository) List(ctx context.Context) ([]domain.Barrio, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: a small sorted sample
	return []domain.Barrio{{Name: "El Prado"}, {Name: "Riomar"}}, nil
}

var _ domain.BarrioRepository = (*MockBarrioRepository)(nil)
