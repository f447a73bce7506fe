package driven

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// UserStore persists user profiles.
type UserStore interface {
	// Save stores or updates a user profile.
	Save(ctx context.Context, user domain.UserProfile) error

	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*domain.UserProfile, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)

	// List returns all user profiles.
	List(ctx context.Context) ([]domain.UserProfile, error)
}

// SessionStore persists authenticated sessions.
type SessionStore interface {
	// Save stores a session.
	Save(ctx context.Context, session domain.Session) error

	// Get retrieves a session by token.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error

	// DeleteForUser removes all sessions for a user.
	DeleteForUser(ctx context.Context, userID string) error
}

// ResetStore persists password reset tokens.
type ResetStore interface {
	// Save stores a reset token.
	Save(ctx context.Context, reset domain.PasswordReset) error

	// Get retrieves a reset token.
	Get(ctx context.Context, token string) (*domain.PasswordReset, error)

	// MarkUsed consumes a reset token so it cannot be redeemed again.
	MarkUsed(ctx context.Context, token string) error
}

// RoleStore provides the runtime-loaded role enumeration.
type RoleStore interface {
	// List returns all roles, lowest rank first.
	List(ctx context.Context) ([]domain.Role, error)

	// Get retrieves a role by ID.
	Get(ctx context.Context, id string) (*domain.Role, error)

	// GetByName retrieves a role by name.
	GetByName(ctx context.Context, name string) (*domain.Role, error)

	// Save stores or updates a role.
	Save(ctx context.Context, role domain.Role) error
}
