package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
)

// fakeStore is a minimal stand-in for the json-server style REST mock.
type fakeStore struct {
	reports map[string]domain.Report
	damage  map[string]domain.Damage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reports: make(map[string]domain.Report),
		damage:  make(map[string]domain.Damage),
	}
}

func (s *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/reports", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cc := r.URL.Query().Get("ccUser")
			out := []domain.Report{}
			for _, rep := range s.reports {
				if cc == "" || rep.CCUser == cc {
					out = append(out, rep)
				}
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var rep domain.Report
			json.NewDecoder(r.Body).Decode(&rep)
			s.reports[rep.ID] = rep
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(rep)
		}
	})

	mux.HandleFunc("/reports/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/reports/")
		rep, ok := s.reports[id]
		switch r.Method {
		case http.MethodGet:
			if !ok {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(rep)
		case http.MethodPut:
			if !ok {
				http.NotFound(w, r)
				return
			}
			var updated domain.Report
			json.NewDecoder(r.Body).Decode(&updated)
			s.reports[id] = updated
			json.NewEncoder(w).Encode(updated)
		}
	})

	mux.HandleFunc("/damage", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			out := []domain.Damage{}
			for _, d := range s.damage {
				out = append(out, d)
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var d domain.Damage
			json.NewDecoder(r.Body).Decode(&d)
			s.damage[d.ID] = d
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(d)
		}
	})

	mux.HandleFunc("/damage/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/damage/")
		d, ok := s.damage[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(d)
		case http.MethodPut:
			var updated domain.Damage
			json.NewDecoder(r.Body).Decode(&updated)
			s.damage[id] = updated
			json.NewEncoder(w).Encode(updated)
		case http.MethodPatch:
			var patch struct {
				Status domain.Status `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&patch)
			d.Status = patch.Status
			s.damage[id] = d
			json.NewEncoder(w).Encode(d)
		}
	})

	return mux
}

func setupRepo(t *testing.T) (*fakeStore, domain.ReportRepository) {
	t.Helper()
	store := newFakeStore()
	srv := httptest.NewServer(store.handler())
	t.Cleanup(srv.Close)
	client := rest.NewClient(srv.URL, time.Second)
	return store, NewReportRepository(client)
}

func adminCtx() context.Context {
	sess := &domain.Session{User: domain.User{ID: "1", Role: domain.RoleAdmin}, Token: "tok"}
	return domain.ContextWithSession(context.Background(), sess)
}

func TestReportRepository_CreateAndRoundTrip(t *testing.T) {
	_, repo := setupRepo(t)
	ctx := context.Background()

	report := &domain.Report{
		ID:          "report-1",
		CCUser:      "1043",
		Address:     "Calle 72 #45-10",
		Description: "water leak on the corner",
		Barrio:      "El Prado",
		DamageType:  "water",
		Priority:    "high",
		DataTime:    domain.ReportTimes{TimeCreateReport: time.Now()},
		Status:      domain.StatusReceived,
	}
	if err := repo.CreateReport(ctx, report); err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	back, err := repo.FindReport(ctx, "report-1")
	if err != nil {
		t.Fatalf("find report failed: %v", err)
	}
	if back.CCUser != report.CCUser || back.Address != report.Address ||
		back.Description != report.Description || back.Barrio != report.Barrio {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestReportRepository_FindMissing(t *testing.T) {
	_, repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.FindReport(ctx, "ghost"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for report, got %v", err)
	}
	if _, err := repo.FindDamage(ctx, "ghost"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for damage, got %v", err)
	}
}

func TestReportRepository_ListReportsByCC(t *testing.T) {
	store, repo := setupRepo(t)
	store.reports["a"] = domain.Report{ID: "a", CCUser: "111", Status: domain.StatusReceived}
	store.reports["b"] = domain.Report{ID: "b", CCUser: "222", Status: domain.StatusResolved}

	got, err := repo.ListReportsByCC(context.Background(), "111")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestReportRepository_UpdateRequiresSession(t *testing.T) {
	store, repo := setupRepo(t)
	store.reports["r"] = domain.Report{ID: "r", Status: domain.StatusReceived}

	rep := store.reports["r"]
	rep.Status = domain.StatusInProcess
	if err := repo.UpdateReport(context.Background(), &rep); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	if err := repo.UpdateReport(adminCtx(), &rep); err != nil {
		t.Fatalf("authenticated update failed: %v", err)
	}
	if store.reports["r"].Status != domain.StatusInProcess {
		t.Error("update did not reach the store")
	}
}

func TestReportRepository_PatchDamageStatus(t *testing.T) {
	store, repo := setupRepo(t)
	store.damage["d"] = domain.Damage{ID: "d", Lat: 10.9, Lon: -74.8, Status: domain.StatusReceived}

	updated, err := repo.PatchDamageStatus(adminCtx(), "d", domain.StatusInProcess)
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if updated.Status != domain.StatusInProcess {
		t.Errorf("expected in_process, got %s", updated.Status)
	}
	if updated.Lat != 10.9 {
		t.Error("patch must not clobber other fields")
	}

	if _, err := repo.PatchDamageStatus(adminCtx(), "ghost", domain.StatusResolved); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
