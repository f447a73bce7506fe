package driving

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// AuthService manages accounts and sessions. It is the explicitly
// initialised session context owned by the composition root; adapters
// observe auth state changes through Subscribe rather than through
// shared mutable globals.
type AuthService interface {
	// SignUp creates an account and returns the new profile.
	SignUp(ctx context.Context, email, password, displayName string) (*domain.UserProfile, error)

	// SignIn verifies credentials and issues a session.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignOut revokes a session.
	SignOut(ctx context.Context, token string) error

	// CurrentSession resolves a token to its live session.
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)

	// CurrentUser resolves a token to the authenticated profile.
	CurrentUser(ctx context.Context, token string) (*domain.UserProfile, error)

	// RefreshSession re-issues a session token before expiry.
	RefreshSession(ctx context.Context, token string) (*domain.Session, error)

	// RequestPasswordReset issues a single-use reset token for the
	// account with the given email.
	RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordReset, error)

	// UpdatePassword changes the password using a reset token.
	UpdatePassword(ctx context.Context, resetToken, newPassword string) error

	// Subscribe registers a listener for auth state changes and
	// returns its unsubscribe function.
	Subscribe(fn func(domain.AuthEvent)) (unsubscribe func())
}
