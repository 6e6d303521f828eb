package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

// DashboardSnapshot is an immutable view of the data the dashboard renders.
type DashboardSnapshot struct {
	Reports  []domain.Report
	Damage   []domain.Damage
	Barrios  []domain.Barrio
	LoadedAt time.Time
}

// DashboardService composes the repositories into the triage view. A
// refresh that is already in flight rejects overlapping refreshes instead
// of queueing them; the periodic poll honors the same guard, so a slow
// store never stacks duplicate loads.
type DashboardService struct {
	reports domain.ReportRepository
	barrios domain.BarrioRepository

	refreshing atomic.Bool
	mu         sync.RWMutex
	snapshot   *DashboardSnapshot
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(reports domain.ReportRepository, barrios domain.BarrioRepository) *DashboardService {
	return &DashboardService{reports: reports, barrios: barrios}
}

// Refresh loads reports, damage and barrios into a new snapshot. It fails
// fast with ErrRefreshInFlight when another refresh holds the guard.
func (s *DashboardService) Refresh(ctx context.Context) (*DashboardSnapshot, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return nil, domain.ErrRefreshInFlight
	}
	defer s.refreshing.Store(false)

	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	damage, err := s.reports.ListDamage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load damage records: %w", err)
	}
	barrios, err := s.barrios.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load barrios: %w", err)
	}

	snap := &DashboardSnapshot{
		Reports:  reports,
		Damage:   damage,
		Barrios:  barrios,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	return snap, nil
}

// Snapshot returns the last loaded view, or nil before the first refresh.
func (s *DashboardService) Snapshot() *DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// FilterByStatus returns the snapshot's reports in the given status.
func (s *DashboardService) FilterByStatus(status domain.Status) []domain.Report {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	var out []domain.Report
	for _, r := range snap.Reports {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// FilterByBarrio returns the snapshot's reports for the given barrio.
func (s *DashboardService) FilterByBarrio(barrio string) []domain.Report {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	var out []domain.Report
	for _, r := range snap.Reports {
		if r.Barrio == barrio {
			out = append(out, r)
		}
	}
	return out
}

// StartPolling refreshes the snapshot on a fixed interval until ctx is
// cancelled. A tick that finds a refresh in flight is skipped, not queued.
func (s *DashboardService) StartPolling(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				if err == domain.ErrRefreshInFlight {
					log.Printf("DASHBOARD_POLL_SKIPPED: refresh in flight")
					continue
				}
				log.Printf("DASHBOARD_POLL_FAILED: error=%v", err)
			}
		}
	}
}
