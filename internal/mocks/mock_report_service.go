package mocks

import (
	"context"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockReportService implements domain.ReportService interface for testing
type MockReportService struct {
	SubmitFunc    func(ctx context.Context, intake domain.ReportIntake) (*domain.Report, *domain.Damage, error)
	AdvanceFunc   func(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error)
	SetStatusFunc func(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error)
	ReconcileFunc func(ctx context.Context, id string) (*domain.Report, *domain.Damage, error)
}

// NewMockReportService creates a new MockReportService with default behaviors
func NewMockReportService() *MockReportService {
	return &MockReportService{}
}

// Submit files a new report/damage pair
func (m *MockReportService) Submit(ctx context.Context, intake domain.ReportIntake) (*domain.Report, *domain.Damage, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, intake)
	}
	report := &domain.Report{ID: "r1", CCUser: intake.CCUser, Status: domain.StatusReceived}
	damage := &domain.Damage{ID: "r1", CCUser: intake.CCUser, Status: domain.StatusReceived}
	return report, damage, nil
}

// Advance moves a report to the next lifecycle state
func (m *MockReportService) Advance(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, sess, id, target)
	}
	return &domain.Report{ID: id, Status: target}, nil
}

// SetStatus sets a report's state directly
func (m *MockReportService) SetStatus(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, sess, id, target)
	}
	return &domain.Report{ID: id, Status: target}, nil
}

// Reconcile repairs a diverged report/damage pair
func (m *MockReportService) Reconcile(ctx context.Context, id string) (*domain.Report, *domain.Damage, error) {
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx, id)
	}
	report := &domain.Report{ID: id, Status: domain.StatusReceived}
	damage := &domain.Damage{ID: id, Status: domain.StatusReceived}
	return report, damage, nil
}

var _ domain.ReportService = (*MockReportService)(nil)
