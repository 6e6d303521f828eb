package storage

import (
	"context"
	"sync"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MemoryStore implements domain.SessionStore in process memory. It is the
// default backend for local development and the test double for services.
// The user record and the token are held in separate maps so the
// both-entries-or-nothing invariant is exercised the same way as in Redis.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]domain.Session
	tokens map[string]string
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]domain.Session),
		tokens: make(map[string]string),
	}
}

// Save implements domain.SessionStore.
func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	now := time.Now()
	if session.LoginTime.IsZero() {
		session.LoginTime = now
	}
	if session.LastActivity.IsZero() {
		session.LastActivity = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[session.Token] = *session
	s.tokens[session.Token] = session.Token
	return nil
}

// Load implements domain.SessionStore.
func (s *MemoryStore) Load(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, okUser := s.users[token]
	_, okToken := s.tokens[token]
	if !okUser || !okToken {
		return nil, domain.ErrSessionNotFound
	}
	copy := session
	return &copy, nil
}

// Touch implements domain.SessionStore.
func (s *MemoryStore) Touch(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, okUser := s.users[token]
	if _, okToken := s.tokens[token]; !okUser || !okToken {
		return nil
	}
	session.LastActivity = time.Now()
	s.users[token] = session
	return nil
}

// Delete implements domain.SessionStore.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, token)
	delete(s.tokens, token)
	return nil
}

// DropUserEntry removes only the user half of a session, leaving the token
// behind. Tests use it to assert that a half-present session reads as
// logged out.
func (s *MemoryStore) DropUserEntry(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, token)
}

var _ domain.SessionStore = (*MemoryStore)(nil)
