package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
)

// ReportRepository implements domain.ReportRepository over the reports and
// damage collections. The two projections share record IDs; keeping their
// statuses equal is the report service's job, this layer only moves bytes.
type ReportRepository struct {
	client *rest.Client
}

// NewReportRepository creates a new report repository.
func NewReportRepository(client *rest.Client) domain.ReportRepository {
	return &ReportRepository{client: client}
}

// CreateReport implements domain.ReportRepository.
func (r *ReportRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	if err := r.client.Post(ctx, "/reports", report, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// CreateDamage implements domain.ReportRepository.
func (r *ReportRepository) CreateDamage(ctx context.Context, damage *domain.Damage) error {
	if err := r.client.Post(ctx, "/damage", damage, damage); err != nil {
		return fmt.Errorf("failed to create damage record: %w", err)
	}
	return nil
}

// FindReport implements domain.ReportRepository.
func (r *ReportRepository) FindReport(ctx context.Context, id string) (*domain.Report, error) {
	var report domain.Report
	if err := r.client.Get(ctx, "/reports/"+url.PathEscape(id), &report); err != nil {
		return nil, notFoundOr(err)
	}
	return &report, nil
}

// FindDamage implements domain.ReportRepository.
func (r *ReportRepository) FindDamage(ctx context.Context, id string) (*domain.Damage, error) {
	var damage domain.Damage
	if err := r.client.Get(ctx, "/damage/"+url.PathEscape(id), &damage); err != nil {
		return nil, notFoundOr(err)
	}
	return &damage, nil
}

// ListReports implements domain.ReportRepository.
func (r *ReportRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	var reports []domain.Report
	if err := r.client.Get(ctx, "/reports", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListReportsByCC implements domain.ReportRepository.
func (r *ReportRepository) ListReportsByCC(ctx context.Context, ccUser string) ([]domain.Report, error) {
	var reports []domain.Report
	endpoint := "/reports?ccUser=" + url.QueryEscape(ccUser)
	if err := r.client.Get(ctx, endpoint, &reports); err != nil {
		return nil, err
	}
	// The store's filter match is not guaranteed to be exact.
	filtered := reports[:0]
	for _, rep := range reports {
		if rep.CCUser == ccUser {
			filtered = append(filtered, rep)
		}
	}
	return filtered, nil
}

// ListDamage implements domain.ReportRepository.
func (r *ReportRepository) ListDamage(ctx context.Context) ([]domain.Damage, error) {
	var damage []domain.Damage
	if err := r.client.Get(ctx, "/damage", &damage); err != nil {
		return nil, err
	}
	return damage, nil
}

// UpdateReport implements domain.ReportRepository with a full PUT replace.
func (r *ReportRepository) UpdateReport(ctx context.Context, report *domain.Report) error {
	endpoint := "/reports/" + url.PathEscape(report.ID)
	if err := r.client.SecurePut(ctx, endpoint, report, report); err != nil {
		return notFoundOr(err)
	}
	return nil
}

// UpdateDamage implements domain.ReportRepository with a full PUT replace.
func (r *ReportRepository) UpdateDamage(ctx context.Context, damage *domain.Damage) error {
	endpoint := "/damage/" + url.PathEscape(damage.ID)
	if err := r.client.SecurePut(ctx, endpoint, damage, damage); err != nil {
		return notFoundOr(err)
	}
	return nil
}

// PatchDamageStatus implements domain.ReportRepository. The map view only
// ever changes the status field, so it rides PATCH instead of replacing
// the record.
func (r *ReportRepository) PatchDamageStatus(ctx context.Context, id string, status domain.Status) (*domain.Damage, error) {
	var updated domain.Damage
	endpoint := "/damage/" + url.PathEscape(id)
	body := map[string]domain.Status{"status": status}
	if err := r.client.SecurePatch(ctx, endpoint, body, &updated); err != nil {
		return nil, notFoundOr(err)
	}
	return &updated, nil
}

func notFoundOr(err error) error {
	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == 404 {
		return domain.ErrNotFound
	}
	return err
}

var _ domain.ReportRepository = (*ReportRepository)(nil)
