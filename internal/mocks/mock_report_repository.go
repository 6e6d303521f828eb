package mocks

import (
	"context"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockReportRepository implements domain.ReportRepository interface for testing
type MockReportRepository struct {
	CreateReportFunc      func(ctx context.Context, report *domain.Report) error
	CreateDamageFunc      func(ctx context.Context, damage *domain.Damage) error
	FindReportFunc        func(ctx context.Context, id string) (*domain.Report, error)
	FindDamageFunc        func(ctx context.Context, id string) (*domain.Damage, error)
	ListReportsFunc       func(ctx context.Context) ([]domain.Report, error)
	ListReportsByCCFunc   func(ctx context.Context, ccUser string) ([]domain.Report, error)
	ListDamageFunc        func(ctx context.Context) ([]domain.Damage, error)
	UpdateReportFunc      func(ctx context.Context, report *domain.Report) error
	UpdateDamageFunc      func(ctx context.Context, damage *domain.Damage) error
	PatchDamageStatusFunc func(ctx context.Context, id string, status domain.Status) (*domain.Damage, error)
}

// NewMockReportRepository creates a new MockReportRepository with default behaviors
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

// CreateReport creates a report record
func (m *MockReportRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	if m.CreateReportFunc != nil {
		return m.CreateReportFunc(ctx, report)
	}
	return nil
}

// CreateDamage creates a damage record
func (m *MockReportRepository) CreateDamage(ctx context.Context, damage *domain.Damage) error {
	if m.CreateDamageFunc != nil {
		return m.CreateDamageFunc(ctx, damage)
	}
	return nil
}

// FindReport finds a report by ID
func (m *MockReportRepository) FindReport(ctx context.Context, id string) (*domain.Report, error) {
	if m.FindReportFunc != nil {
		return m.FindReportFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrNotFound
}

// FindDamage finds a damage record by ID
func (m *MockReportRepository) FindDamage(ctx context.Context, id string) (*domain.Damage, error) {
	if m.FindDamageFunc != nil {
		return m.FindDamageFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrNotFound
}

// ListReports lists all reports
func (m *MockReportRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	if m.ListReportsFunc != nil {
		return m.ListReportsFunc(ctx)
	}
	return []domain.Report{}, nil
}

// ListReportsByCC lists reports filed by one citizen
func (m *MockReportRepository) ListReportsByCC(ctx context.Context, ccUser string) ([]domain.Report, error) {
	if m.ListReportsByCCFunc != nil {
		return m.ListReportsByCCFunc(ctx, ccUser)
	}
	return []domain.Report{}, nil
}

// ListDamage lists all damage records
func (m *MockReportRepository) ListDamage(ctx context.Context) ([]domain.Damage, error) {
	if m.ListDamageFunc != nil {
		return m.ListDamageFunc(ctx)
	}
	return []domain.Damage{}, nil
}

// UpdateReport replaces a report record
func (m *MockReportRepository) UpdateReport(ctx context.Context, report *domain.Report) error {
	if m.UpdateReportFunc != nil {
		return m.UpdateReportFunc(ctx, report)
	}
	return nil
}

// UpdateDamage replaces a damage record
func (m *MockReportRepository) UpdateDamage(ctx context.Context, damage *domain.Damage) error {
	if m.UpdateDamageFunc != nil {
		return m.UpdateDamageFunc(ctx, damage)
	}
	return nil
}

// PatchDamageStatus changes only the status of a damage record
func (m *MockReportRepository) PatchDamageStatus(ctx context.Context, id string, status domain.Status) (*domain.Damage, error) {
	if m.PatchDamageStatusFunc != nil {
		return m.PatchDamageStatusFunc(ctx, id, status)
	}
	return &domain.Damage{ID: id, Status: status}, nil
}

var _ domain.ReportRepository = (*MockReportRepository)(nil)
