package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/mocks"
)

func TestAuthService_Login(t *testing.T) {
	user := &domain.User{ID: "1", Email: "admin@sistema.com", PasswordHash: "hashed_admin123", Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		email    string
		password string
		findErr  error
		wantErr  error
	}{
		{name: "valid credentials", email: "admin@sistema.com", password: "admin123"},
		{name: "wrong password", email: "admin@sistema.com", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown user", email: "ghost@example.com", password: "x", findErr: domain.ErrUserNotFound, wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
				if tt.findErr != nil {
					return nil, tt.findErr
				}
				return user, nil
			}
			store := mocks.NewMockSessionStore()
			var saved *domain.Session
			store.SaveFunc = func(ctx context.Context, s *domain.Session) error {
				saved = s
				return nil
			}

			svc := NewAuthService(userRepo, store, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), 24*time.Hour)

			sess, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if saved != nil {
					t.Error("failed login must not store a session")
				}
				return
			}
			if err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if sess.Token == "" {
				t.Error("session should carry the issued token")
			}
			if saved == nil || saved.Token != sess.Token {
				t.Error("session was not stored")
			}
			if sess.LoginTime.IsZero() || sess.LastActivity.IsZero() {
				t.Error("login must stamp LoginTime and LastActivity")
			}
		})
	}
}

func TestAuthService_RegisterExistingEmail(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: "1", Email: email}, nil
	}

	svc := NewAuthService(userRepo, mocks.NewMockSessionStore(), mocks.NewMockPasswordService(), mocks.NewMockTokenService(), 24*time.Hour)

	_, err := svc.Register(context.Background(), "Ana", "123", "ana@example.com", "secret")
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestAuthService_RegisterDefaultsToVisitor(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	var created *domain.User
	userRepo.CreateFunc = func(ctx context.Context, u *domain.User) error {
		u.ID = "7"
		created = u
		return nil
	}

	svc := NewAuthService(userRepo, mocks.NewMockSessionStore(), mocks.NewMockPasswordService(), mocks.NewMockTokenService(), 24*time.Hour)

	user, err := svc.Register(context.Background(), "Ana", "123", "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleVisitor {
		t.Errorf("new accounts must start as visitor, got %s", user.Role)
	}
	if created.PasswordHash == "secret" {
		t.Error("password must be hashed before storage")
	}
}

func TestAuthService_ValidateSessionExpired(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	deletes := 0

	store := mocks.NewMockSessionStore()
	store.LoadFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		if deletes > 0 {
			return nil, domain.ErrSessionNotFound
		}
		return &domain.Session{
			User:         domain.User{ID: "1", Role: domain.RoleUser},
			Token:        token,
			LoginTime:    old,
			LastActivity: old,
		}, nil
	}
	store.DeleteFunc = func(ctx context.Context, token string) error {
		deletes++
		return nil
	}

	svc := NewAuthService(mocks.NewMockUserRepository(), store, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), 24*time.Hour)

	if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if deletes != 1 {
		t.Fatalf("expired session must be cleared, got %d deletes", deletes)
	}

	// A second observation sees the already-cleared state.
	if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after clear, got %v", err)
	}
	if deletes != 1 {
		t.Errorf("clearing must be idempotent, got %d deletes", deletes)
	}
}

func TestAuthService_ValidateSessionRejectsForgedToken(t *testing.T) {
	loads := 0
	store := mocks.NewMockSessionStore()
	store.LoadFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		loads++
		now := time.Now()
		return &domain.Session{User: domain.User{ID: "1", Role: domain.RoleUser}, Token: token, LoginTime: now, LastActivity: now}, nil
	}

	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenInvalid
	}

	svc := NewAuthService(mocks.NewMockUserRepository(), store, mocks.NewMockPasswordService(), tokenSvc, 24*time.Hour)

	if _, err := svc.ValidateSession(context.Background(), "forged"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if loads != 0 {
		t.Errorf("a bad signature must not reach the store, got %d loads", loads)
	}
}

func TestAuthService_ValidateSessionExpiredSignatureDefersToWindow(t *testing.T) {
	now := time.Now()
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleUser}, nil
	}
	store := mocks.NewMockSessionStore()
	store.LoadFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		return &domain.Session{User: domain.User{ID: "1", Role: domain.RoleUser}, Token: token, LoginTime: now, LastActivity: now}, nil
	}

	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenExpired
	}

	svc := NewAuthService(userRepo, store, mocks.NewMockPasswordService(), tokenSvc, 24*time.Hour)

	// The stored session is still inside its window, so a merely stale
	// signature does not reject it.
	sess, err := svc.ValidateSession(context.Background(), "tok")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if sess == nil || sess.User.ID != "1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestAuthService_ValidateSessionUserGone(t *testing.T) {
	now := time.Now()
	deleted := false

	store := mocks.NewMockSessionStore()
	store.LoadFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		return &domain.Session{
			User:         domain.User{ID: "1", Role: domain.RoleUser},
			Token:        token,
			LoginTime:    now,
			LastActivity: now,
		}, nil
	}
	store.DeleteFunc = func(ctx context.Context, token string) error {
		deleted = true
		return nil
	}

	// FindByID default is ErrUserNotFound.
	svc := NewAuthService(mocks.NewMockUserRepository(), store, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), 24*time.Hour)

	if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if !deleted {
		t.Error("session for a deleted account must be cleared")
	}
}

func TestAuthService_ValidateSessionTouchesActivity(t *testing.T) {
	now := time.Now()
	touched := false

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleUser}, nil
	}

	store := mocks.NewMockSessionStore()
	store.LoadFunc = func(ctx context.Context, token string) (*domain.Session, error) {
		return &domain.Session{
			User:         domain.User{ID: "1", Role: domain.RoleUser},
			Token:        token,
			LoginTime:    now,
			LastActivity: now,
		}, nil
	}
	store.TouchFunc = func(ctx context.Context, token string) error {
		touched = true
		return nil
	}

	svc := NewAuthService(userRepo, store, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), 24*time.Hour)

	sess, err := svc.ValidateSession(context.Background(), "tok")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if sess == nil || sess.User.ID != "1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !touched {
		t.Error("valid session must refresh LastActivity")
	}
}

func TestAuthService_HasRole(t *testing.T) {
	svc := NewAuthService(mocks.NewMockUserRepository(), mocks.NewMockSessionStore(), mocks.NewMockPasswordService(), mocks.NewMockTokenService(), time.Hour)

	tests := []struct {
		name     string
		sess     *domain.Session
		required domain.Role
		want     bool
	}{
		{"admin satisfies user", &domain.Session{User: domain.User{Role: domain.RoleAdmin}}, domain.RoleUser, true},
		{"admin satisfies visitor", &domain.Session{User: domain.User{Role: domain.RoleAdmin}}, domain.RoleVisitor, true},
		{"user lacks admin", &domain.Session{User: domain.User{Role: domain.RoleUser}}, domain.RoleAdmin, false},
		{"visitor satisfies visitor", &domain.Session{User: domain.User{Role: domain.RoleVisitor}}, domain.RoleVisitor, true},
		{"nil session has no role", nil, domain.RoleVisitor, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.HasRole(tt.sess, tt.required); got != tt.want {
				t.Errorf("HasRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	deleted := ""
	store := mocks.NewMockSessionStore()
	store.DeleteFunc = func(ctx context.Context, token string) error {
		deleted = token
		return nil
	}

	svc := NewAuthService(mocks.NewMockUserRepository(), store, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), time.Hour)

	if err := svc.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if deleted != "tok" {
		t.Errorf("expected session tok cleared, got %q", deleted)
	}
}
