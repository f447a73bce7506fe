// Package memory provides in-memory implementations of the driven
// store ports. Used as test fixtures and for ephemeral runs.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.UserProfile
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.UserProfile)}
}

// Save stores or updates a user profile.
func (s *UserStore) Save(_ context.Context, user domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(_ context.Context, id string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all user profiles.
func (s *UserStore) List(_ context.Context) ([]domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.UserProfile, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

// Save stores a session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

// Get retrieves a session by token.
func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// Delete removes a session by token.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// DeleteForUser removes all sessions for a user.
func (s *SessionStore) DeleteForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

// Ensure ResetStore implements the interface.
var _ driven.ResetStore = (*ResetStore)(nil)

// ResetStore is an in-memory implementation of driven.ResetStore.
type ResetStore struct {
	mu     sync.RWMutex
	resets map[string]domain.PasswordReset
}

// NewResetStore creates a new in-memory reset store.
func NewResetStore() *ResetStore {
	return &ResetStore{resets: make(map[string]domain.PasswordReset)}
}

// Save stores a reset token.
func (s *ResetStore) Save(_ context.Context, reset domain.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[reset.Token] = reset
	return nil
}

// Get retrieves a reset token.
func (s *ResetStore) Get(_ context.Context, token string) (*domain.PasswordReset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reset, ok := s.resets[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &reset, nil
}

// MarkUsed consumes a reset token.
func (s *ResetStore) MarkUsed(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reset, ok := s.resets[token]
	if !ok {
		return domain.ErrNotFound
	}
	reset.UsedAt = time.Now().UTC()
	s.resets[token] = reset
	return nil
}
