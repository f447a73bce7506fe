package domain

import "time"

// UserProfile represents an account that can own sessions and memberships.
type UserProfile struct {
	// ID is the unique identifier for the user.
	ID string

	// Email is the sign-in identifier. Unique across the system.
	Email string

	// DisplayName is the human-readable name shown in member lists.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password. Never exposed by adapters.
	PasswordHash string

	// AvatarPath is an optional blob store path for the profile picture.
	AvatarPath string

	// CreatedAt is when the account was created.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time
}

// Validate checks the profile has the minimum required fields.
func (u *UserProfile) Validate() error {
	if u.ID == "" || u.Email == "" {
		return ErrInvalidInput
	}
	return nil
}

// Session is an authenticated session issued at sign-in.
// The token is an opaque bearer credential.
type Session struct {
	// Token is the opaque session credential.
	Token string

	// UserID links to the authenticated UserProfile.
	UserID string

	// CreatedAt is when the session was issued.
	CreatedAt time.Time

	// ExpiresAt is when the session stops being accepted.
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// AuthEventKind identifies an auth state change.
type AuthEventKind string

// Auth state change events emitted by the session manager.
const (
	AuthSignedIn       AuthEventKind = "signed-in"
	AuthSignedOut      AuthEventKind = "signed-out"
	AuthTokenRefreshed AuthEventKind = "token-refreshed"
)

// AuthEvent notifies subscribers of a session state change.
type AuthEvent struct {
	// Kind is the state change that occurred.
	Kind AuthEventKind

	// UserID is the affected user.
	UserID string

	// Session is the session after the change. Nil for AuthSignedOut.
	Session *Session
}

// PasswordReset is a single-use token allowing a password change
// without a live session.
type PasswordReset struct {
	// Token is the opaque reset credential sent to the user.
	Token string

	// UserID links to the account being reset.
	UserID string

	// CreatedAt is when the reset was requested.
	CreatedAt time.Time

	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time

	// UsedAt is when the token was consumed. Zero if still valid.
	UsedAt time.Time
}

// Usable reports whether the reset token can still be redeemed.
func (r *PasswordReset) Usable(now time.Time) bool {
	if !r.UsedAt.IsZero() {
		return false
	}
	return r.ExpiresAt.IsZero() || now.Before(r.ExpiresAt)
}
