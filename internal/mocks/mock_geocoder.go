package mocks

import (
	"context"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockGeocoder implements domain.Geocoder interface for testing
type MockGeocoder struct {
	GeocodeFunc func(ctx context.Context, address string) (float64, float64, error)
}

// NewMockGeocoder creates a new MockGeocoder with default behaviors
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{}
}

// Geocode resolves an address to coordinates
func (m *MockGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, address)
	}
	// Default behavior: a fixed Barranquilla coordinate
	return 10.9878, -74.7889, nil
}

var _ domain.Geocoder = (*MockGeocoder)(nil)
