package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

// AuthServiceImpl implements domain.AuthService. Visible states run
// Anonymous -> Authenticated -> (Expired | LoggedOut) -> Anonymous; any
// call that observes Expired clears the session before reporting failure.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessions    domain.SessionStore
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	expiry      time.Duration
}

// NewAuthService creates a new auth service. expiry is the session window
// measured from login time.
func NewAuthService(
	userRepo domain.UserRepository,
	sessions domain.SessionStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	expiry time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessions:    sessions,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		expiry:      expiry,
	}
}

// Register implements domain.AuthService. New accounts always start as
// visitors; elevation is an operator action on the store.
func (s *AuthServiceImpl) Register(ctx context.Context, name, cc, email, password string) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		CC:           cc,
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleVisitor,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("USER_REGISTERED: user_id=%s email=%s", user.ID, user.Email)
	return user, nil
}

// Login implements domain.AuthService. Zero matches and a bad password are
// indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		User:         *user,
		Token:        token,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Printf("LOGIN: user_id=%s email=%s role=%s", user.ID, user.Email, user.Role)
	return session, nil
}

// IsAuthenticated implements domain.AuthService. True iff the store holds
// both the user record and the token.
func (s *AuthServiceImpl) IsAuthenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	_, err := s.sessions.Load(ctx, token)
	return err == nil
}

// ValidateSession implements domain.AuthService. It fails closed: an
// expired session, or one whose user no longer exists server-side, is
// deleted before the error returns. A valid session gets its LastActivity
// refreshed. Calling it twice on an expired session yields the same
// cleared state.
func (s *AuthServiceImpl) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	// Reject forged tokens before touching the store. A stale signature is
	// not conclusive on its own: the session window below owns expiry and
	// clears the store when it fires.
	if _, err := s.tokenSvc.Validate(token); err != nil && !errors.Is(err, domain.ErrTokenExpired) {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.expiry, time.Now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			log.Printf("SESSION_CLEAR_FAILED: user_id=%s error=%v", session.User.ID, err)
		}
		log.Printf("SESSION_EXPIRED: user_id=%s login_time=%s", session.User.ID, session.LoginTime.Format(time.RFC3339))
		return nil, domain.ErrSessionExpired
	}

	// Re-confirm the account still exists rather than trusting the local
	// clock alone.
	if _, err := s.userRepo.FindByID(ctx, session.User.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if derr := s.sessions.Delete(ctx, token); derr != nil {
				log.Printf("SESSION_CLEAR_FAILED: user_id=%s error=%v", session.User.ID, derr)
			}
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to revalidate user: %w", err)
	}

	if err := s.sessions.Touch(ctx, token); err != nil {
		log.Printf("SESSION_TOUCH_FAILED: user_id=%s error=%v", session.User.ID, err)
	}
	return session, nil
}

// HasRole implements domain.AuthService using the ordered role hierarchy.
func (s *AuthServiceImpl) HasRole(sess *domain.Session, required domain.Role) bool {
	return sess.HasRole(required)
}

// Logout implements domain.AuthService. It only clears the session;
// navigation is the transport layer's concern.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	log.Printf("LOGOUT: token_cleared=true")
	return nil
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
