package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

const (
	// sessionTTL is how long an issued session stays valid.
	sessionTTL = 30 * 24 * time.Hour

	// resetTTL is how long a password reset token stays valid.
	resetTTL = time.Hour

	// minPasswordLength is enforced before any hashing happens.
	minPasswordLength = 8
)

// AuthService manages accounts, sessions and auth state subscriptions.
type AuthService struct {
	users    driven.UserStore
	sessions driven.SessionStore
	resets   driven.ResetStore

	mu          sync.Mutex
	subscribers map[int]func(domain.AuthEvent)
	nextSubID   int
}

// NewAuthService creates a new auth service.
func NewAuthService(users driven.UserStore, sessions driven.SessionStore, resets driven.ResetStore) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		resets:      resets,
		subscribers: make(map[int]func(domain.AuthEvent)),
	}
}

// SignUp creates an account and returns the new profile.
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*domain.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.UserProfile{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	logger.Info("user signed up: %s", email)
	return &user, nil
}

// SignIn verifies credentials and issues a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.emit(domain.AuthEvent{Kind: domain.AuthSignedIn, UserID: user.ID, Session: &session})
	return &session, nil
}

// SignOut revokes a session.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil // Already signed out
		}
		return fmt.Errorf("looking up session: %w", err)
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	s.emit(domain.AuthEvent{Kind: domain.AuthSignedOut, UserID: session.UserID})
	return nil
}

// CurrentSession resolves a token to its live session.
// Expired sessions are revoked on sight.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthRequired
		}
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}

// CurrentUser resolves a token to the authenticated profile.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.UserProfile, error) {
	session, err := s.CurrentSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.users.Get(ctx, session.UserID)
}

// RefreshSession re-issues a session token before expiry.
func (s *AuthService) RefreshSession(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.CurrentSession(ctx, token)
	if err != nil {
		return nil, err
	}

	fresh := domain.Session{
		Token:     uuid.NewString(),
		UserID:    session.UserID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	if err := s.sessions.Save(ctx, fresh); err != nil {
		return nil, fmt.Errorf("saving refreshed session: %w", err)
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return nil, fmt.Errorf("revoking old session: %w", err)
	}

	s.emit(domain.AuthEvent{Kind: domain.AuthTokenRefreshed, UserID: fresh.UserID, Session: &fresh})
	return &fresh, nil
}

// RequestPasswordReset issues a single-use reset token for the account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordReset, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reset := domain.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(resetTTL),
	}
	if err := s.resets.Save(ctx, reset); err != nil {
		return nil, fmt.Errorf("saving reset token: %w", err)
	}

	return &reset, nil
}

// UpdatePassword changes the password using a reset token.
// All existing sessions for the user are revoked.
func (s *AuthService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidInput
	}

	reset, err := s.resets.Get(ctx, resetToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return fmt.Errorf("looking up reset token: %w", err)
	}
	if !reset.Usable(time.Now().UTC()) {
		return domain.ErrResetTokenInvalid
	}

	user, err := s.users.Get(ctx, reset.UserID)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, *user); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	if err := s.resets.MarkUsed(ctx, resetToken); err != nil {
		return fmt.Errorf("consuming reset token: %w", err)
	}

	if err := s.sessions.DeleteForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("revoking sessions: %w", err)
	}

	s.emit(domain.AuthEvent{Kind: domain.AuthSignedOut, UserID: user.ID})
	return nil
}

// Subscribe registers a listener for auth state changes and returns
// its unsubscribe function. Listeners are invoked synchronously.
func (s *AuthService) Subscribe(fn func(domain.AuthEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// emit delivers an event to all subscribers.
func (s *AuthService) emit(event domain.AuthEvent) {
	s.mu.Lock()
	fns := make([]func(domain.AuthEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
