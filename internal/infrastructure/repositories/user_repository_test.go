package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
)

func setupUserRepo(t *testing.T, seed ...domain.User) domain.UserRepository {
	t.Helper()

	users := make(map[string]domain.User)
	nextID := 1
	for _, u := range seed {
		users[u.ID] = u
		nextID++
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			email := r.URL.Query().Get("email")
			out := []domain.User{}
			for _, u := range users {
				if email == "" || u.Email == email {
					out = append(out, u)
				}
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var u domain.User
			json.NewDecoder(r.Body).Decode(&u)
			u.ID = strconv.Itoa(nextID)
			nextID++
			users[u.ID] = u
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(u)
		}
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/users/")
		u, ok := users[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(u)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewUserRepository(rest.NewClient(srv.URL, time.Second))
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	repo := setupUserRepo(t)

	user := &domain.User{Name: "Ana", Email: "ana@example.com", Role: domain.RoleVisitor}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == "" {
		t.Error("create should propagate the store-assigned id")
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := setupUserRepo(t, domain.User{ID: "1", Email: "admin@sistema.com", Role: domain.RoleAdmin})

	user, err := repo.FindByEmail(context.Background(), "admin@sistema.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user.ID != "1" || user.Role != domain.RoleAdmin {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.FindByEmail(context.Background(), "ghost@example.com"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := setupUserRepo(t, domain.User{ID: "9", Email: "v@example.com", Role: domain.RoleVisitor})

	user, err := repo.FindByID(context.Background(), "9")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user.Email != "v@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.FindByID(context.Background(), "404"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
