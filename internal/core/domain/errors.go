package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors.

	// ErrAuthRequired indicates the operation needs an authenticated session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired indicates the session token is no longer valid.
	ErrSessionExpired = errors.New("session expired")

	// ErrResetTokenInvalid indicates the password reset token is unknown or spent.
	ErrResetTokenInvalid = errors.New("password reset token invalid")

	// Membership errors.

	// ErrPermissionDenied indicates the acting member lacks the required role rank.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSelfModification indicates a member tried to change or remove their
	// own membership. Rejected regardless of permission level.
	ErrSelfModification = errors.New("cannot modify own membership")

	// ErrNotMember indicates the user has no membership in the project.
	ErrNotMember = errors.New("not a project member")

	// Page tree errors.

	// ErrPageCycle indicates a move would make a page a descendant of itself.
	ErrPageCycle = errors.New("page move would create a cycle")

	// ErrSlugTaken indicates the derived slug collides within its sibling scope.
	ErrSlugTaken = errors.New("slug already taken in this scope")

	// Version lifecycle errors.

	// ErrVersionCurrent indicates the operation is forbidden on the current version.
	ErrVersionCurrent = errors.New("version is current")

	// ErrVersionNotDraft indicates the operation requires a draft version.
	ErrVersionNotDraft = errors.New("version is not a draft")

	// ErrVersionDraft indicates the operation is forbidden on drafts.
	ErrVersionDraft = errors.New("version is still a draft")

	// ErrVersionArchived indicates the version has been archived and is read-only.
	ErrVersionArchived = errors.New("version is archived")
)
