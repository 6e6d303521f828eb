package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/geo"
)

// ReportServiceImpl implements domain.ReportService. It owns the status
// state machine across the paired report/damage projections: after any
// transition both halves must carry the same status, with the lifecycle
// timestamp for the entered state stamped on the report.
type ReportServiceImpl struct {
	repo          domain.ReportRepository
	geocoder      domain.Geocoder
	notifier      domain.NotificationService
	defaultLat    float64
	defaultLon    float64
	retryAttempts int
	retryBackoff  time.Duration
	sleep         func(time.Duration)
}

// ReportServiceConfig carries the tunables for the report service.
type ReportServiceConfig struct {
	DefaultLat    float64
	DefaultLon    float64
	RetryAttempts int
	RetryBackoff  time.Duration
}

// NewReportService creates a new report service. notifier may be nil;
// resolved-report SMS is best effort either way.
func NewReportService(
	repo domain.ReportRepository,
	geocoder domain.Geocoder,
	notifier domain.NotificationService,
	cfg ReportServiceConfig,
) domain.ReportService {
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	return &ReportServiceImpl{
		repo:          repo,
		geocoder:      geocoder,
		notifier:      notifier,
		defaultLat:    cfg.DefaultLat,
		defaultLon:    cfg.DefaultLon,
		retryAttempts: cfg.RetryAttempts,
		retryBackoff:  cfg.RetryBackoff,
		sleep:         time.Sleep,
	}
}

// Submit implements domain.ReportService. One pending report per citizen:
// a second submission while an earlier one is unresolved is rejected. The
// address is geocoded for the map projection; on geocoding failure the
// configured default coordinate is used instead of blocking the intake.
func (s *ReportServiceImpl) Submit(ctx context.Context, intake domain.ReportIntake) (*domain.Report, *domain.Damage, error) {
	if intake.CCUser == "" || intake.Address == "" || intake.Description == "" || intake.Barrio == "" {
		return nil, nil, fmt.Errorf("ccUser, address, description and barrio are required")
	}

	existing, err := s.repo.ListReportsByCC(ctx, intake.CCUser)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check pending reports: %w", err)
	}
	for _, rep := range existing {
		if rep.Status != domain.StatusResolved {
			return nil, nil, domain.ErrDuplicatePending
		}
	}

	fullAddress := geo.FormatAddress(intake.Address, intake.Barrio)
	lat, lon := s.defaultLat, s.defaultLon
	if glat, glon, err := s.geocoder.Geocode(ctx, fullAddress); err != nil {
		log.Printf("GEOCODE_FALLBACK: address=%q error=%v", fullAddress, err)
	} else {
		lat, lon = glat, glon
	}

	id := uuid.NewString()
	now := time.Now()

	report := &domain.Report{
		ID:           id,
		CCUser:       intake.CCUser,
		Address:      intake.Address,
		Description:  intake.Description,
		Barrio:       intake.Barrio,
		DamageType:   intake.DamageType,
		Priority:     intake.Priority,
		ContactPhone: intake.ContactPhone,
		DataTime:     domain.ReportTimes{TimeCreateReport: now},
		Status:       domain.StatusReceived,
	}
	damage := &domain.Damage{
		ID:          id,
		CCUser:      intake.CCUser,
		Address:     fullAddress,
		Lat:         lat,
		Lon:         lon,
		Status:      domain.StatusReceived,
		DamageType:  intake.DamageType,
		Priority:    intake.Priority,
		Description: intake.Description,
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, nil, fmt.Errorf("failed to create report: %w", err)
	}
	if err := s.repo.CreateDamage(ctx, damage); err != nil {
		return nil, nil, fmt.Errorf("create damage after report %s: %w", id, domain.ErrPartialUpdate)
	}

	log.Printf("REPORT_SUBMITTED: id=%s ccUser=%s barrio=%s", id, intake.CCUser, intake.Barrio)
	return report, damage, nil
}

// Advance implements domain.ReportService. Strictly adjacent forward
// transitions; the permissive direct-set path is SetStatus.
func (s *ReportServiceImpl) Advance(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error) {
	if !sess.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, target)
	}

	report, damage, err := s.loadPair(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.Status.CanAdvanceTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, report.Status, target)
	}

	return s.transition(ctx, report, damage, target)
}

// SetStatus implements domain.ReportService. Admins may set any of the
// three states directly to correct a mis-set record; moving backward
// clears the timestamps the new state has not reached yet.
func (s *ReportServiceImpl) SetStatus(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error) {
	if !sess.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, target)
	}

	report, damage, err := s.loadPair(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status == target && damage.Status == target {
		return report, nil
	}

	return s.transition(ctx, report, damage, target)
}

// Reconcile implements domain.ReportService. When the two projections
// disagree the report status is authoritative, because it is what the
// dashboard reads at rest; the damage half is read-repaired via PATCH.
func (s *ReportServiceImpl) Reconcile(ctx context.Context, id string) (*domain.Report, *domain.Damage, error) {
	report, damage, err := s.loadPair(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if report.Status == damage.Status {
		return report, damage, nil
	}

	repaired, err := s.repo.PatchDamageStatus(ctx, id, report.Status)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to repair damage status: %w", err)
	}
	log.Printf("RECONCILED: id=%s damage_status=%s report_status=%s", id, damage.Status, report.Status)
	return report, repaired, nil
}

func (s *ReportServiceImpl) loadPair(ctx context.Context, id string) (*domain.Report, *domain.Damage, error) {
	report, err := s.repo.FindReport(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}
	damage, err := s.repo.FindDamage(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load damage %s: %w", id, err)
	}
	return report, damage, nil
}

// transition applies target to both projections. The damage half is
// written first so the authoritative report half lands last; the report
// write is retried with bounded backoff before the pair is declared
// partially updated.
func (s *ReportServiceImpl) transition(ctx context.Context, report *domain.Report, damage *domain.Damage, target domain.Status) (*domain.Report, error) {
	from := report.Status
	now := time.Now()

	stampTimes(report, target, now)
	report.Status = target
	damage.Status = target

	if err := s.repo.UpdateDamage(ctx, damage); err != nil {
		log.Printf("PARTIAL_UPDATE: id=%s half=damage error=%v", report.ID, err)
		return nil, fmt.Errorf("damage write for %s: %w", report.ID, domain.ErrPartialUpdate)
	}

	var err error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(s.retryBackoff * time.Duration(attempt))
		}
		if err = s.repo.UpdateReport(ctx, report); err == nil {
			break
		}
	}
	if err != nil {
		log.Printf("PARTIAL_UPDATE: id=%s half=report error=%v", report.ID, err)
		return nil, fmt.Errorf("report write for %s after damage committed: %w", report.ID, domain.ErrPartialUpdate)
	}

	log.Printf("STATUS_CHANGED: id=%s from=%s to=%s", report.ID, from, target)

	if target == domain.StatusResolved && report.ContactPhone != "" && s.notifier != nil {
		msg := fmt.Sprintf("Su reporte %s ha sido resuelto. Gracias por su paciencia.", report.ID)
		if err := s.notifier.SendSMS(report.ContactPhone, msg); err != nil {
			log.Printf("NOTIFY_FAILED: id=%s error=%v", report.ID, err)
		}
	}
	return report, nil
}

// stampTimes records the lifecycle timestamp for the state being entered
// and clears the ones a backward correction has invalidated.
func stampTimes(report *domain.Report, target domain.Status, now time.Time) {
	switch target {
	case domain.StatusReceived:
		report.DataTime.TimeProcessReport = nil
		report.DataTime.TimeFinishReport = nil
	case domain.StatusInProcess:
		t := now
		report.DataTime.TimeProcessReport = &t
		report.DataTime.TimeFinishReport = nil
	case domain.StatusResolved:
		t := now
		if report.DataTime.TimeProcessReport == nil {
			report.DataTime.TimeProcessReport = &t
		}
		report.DataTime.TimeFinishReport = &t
	}
}

var _ domain.ReportService = (*ReportServiceImpl)(nil)
