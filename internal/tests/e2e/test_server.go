package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloBytes/reportesvc/domain"
	httpx "github.com/CamiloBytes/reportesvc/internal/http"
	"github.com/CamiloBytes/reportesvc/internal/http/handlers"
	"github.com/CamiloBytes/reportesvc/internal/http/middleware"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/auth"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/repositories"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/storage"
	"github.com/CamiloBytes/reportesvc/internal/mocks"
	"github.com/CamiloBytes/reportesvc/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory stand-in for the json-server style REST store.
type fakeStore struct {
	mu      sync.Mutex
	users   map[string]domain.User
	reports map[string]domain.Report
	damage  map[string]domain.Damage
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[string]domain.User),
		reports: make(map[string]domain.Report),
		damage:  make(map[string]domain.Damage),
		nextID:  1,
	}
}

func (s *fakeStore) seedUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = strconv.Itoa(s.nextID)
		s.nextID++
	}
	s.users[u.ID] = u
}

func (s *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			email := r.URL.Query().Get("email")
			out := []domain.User{}
			for _, u := range s.users {
				if email == "" || u.Email == email {
					out = append(out, u)
				}
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var u domain.User
			json.NewDecoder(r.Body).Decode(&u)
			u.ID = strconv.Itoa(s.nextID)
			s.nextID++
			s.users[u.ID] = u
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(u)
		}
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		u, ok := s.users[strings.TrimPrefix(r.URL.Path, "/users/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(u)
	})

	mux.HandleFunc("/reports", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			out := []domain.Report{}
			for _, rep := range s.reports {
				out = append(out, rep)
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
		s.mu.Lock()
		defer s.mu.Unlock()
		id := strings.TrimPrefix(r.URL.Path, "/reports/")
		rep, ok := s.reports[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(rep)
		case http.MethodPut:
			var updated domain.Report
			json.NewDecoder(r.Body).Decode(&updated)
			updated.ID = id
			s.reports[id] = updated
			json.NewEncoder(w).Encode(updated)
		}
	})

	mux.HandleFunc("/damage", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
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
		s.mu.Lock()
		defer s.mu.Unlock()
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
			updated.ID = id
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

	mux.HandleFunc("/barrios", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Barrio{{Name: "El Prado"}, {Name: "Riomar"}})
	})

	return mux
}

// TestServer wires the real router, services and stores against a fake
// REST store, with the geocoder and SMS sender stubbed out.
type TestServer struct {
	Store    *fakeStore
	StoreSrv *httptest.Server
	Sessions domain.SessionStore
	Notifier *mocks.MockNotificationService
	Router   *gin.Engine
}

// NewTestServer builds a server whose sessions expire after sessionExpiry.
func NewTestServer(t *testing.T, sessionExpiry time.Duration) *TestServer {
	t.Helper()

	store := newFakeStore()
	storeSrv := httptest.NewServer(store.handler())
	t.Cleanup(storeSrv.Close)

	// The admin record mirrors the legacy plaintext seed.
	store.seedUser(domain.User{
		Email:        "admin@sistema.com",
		Name:         "Admin",
		CC:           "0",
		PasswordHash: "admin123",
		Role:         domain.RoleAdmin,
	})

	sessions := storage.NewMemoryStore()
	client := rest.NewClient(storeSrv.URL, 5*time.Second)

	userRepo := repositories.NewUserRepository(client)
	reportRepo := repositories.NewReportRepository(client)
	barrioRepo := repositories.NewBarrioRepository(client)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "reportesvc-test", sessionExpiry)
	notifier := mocks.NewMockNotificationService()

	authSvc := services.NewAuthService(userRepo, sessions, passwordSvc, tokenSvc, sessionExpiry)
	reportSvc := services.NewReportService(reportRepo, mocks.NewMockGeocoder(), notifier, services.ReportServiceConfig{
		DefaultLat:    10.9685,
		DefaultLon:    -74.7813,
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	})
	dashboardSvc := services.NewDashboardService(reportRepo, barrioRepo)

	policySvc, err := services.NewPolicyService()
	if err != nil {
		t.Fatalf("policy service: %v", err)
	}
	if err := policySvc.SeedDefaultPolicies(); err != nil {
		t.Fatalf("seed policies: %v", err)
	}

	authH := handlers.NewAuthHandlers(authSvc)
	reportH := handlers.NewReportHandlers(reportSvc, dashboardSvc, reportRepo, barrioRepo)
	authMW := middleware.NewAuthMW(authSvc)
	casbinMW := middleware.NewCasbinMW(policySvc)

	return &TestServer{
		Store:    store,
		StoreSrv: storeSrv,
		Sessions: sessions,
		Notifier: notifier,
		Router:   httpx.BuildRouter(authH, reportH, authMW, casbinMW),
	}
}

// Do runs one request through the router.
func (ts *TestServer) Do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}
