package driving

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// MemberInfo is a membership joined with its profile and role for display.
type MemberInfo struct {
	Member domain.ProjectMember
	User   domain.UserProfile
	Role   domain.Role
}

// MembershipService manages project membership and role authority.
//
// Every mutating call names the acting user. A member can never change
// or remove their own membership, regardless of permission level.
type MembershipService interface {
	// AddMember grants a user a role on a project. roleName may be
	// empty, in which case the default role is used. Requires admin
	// rank; fails if the (project, user) pair already has a membership.
	AddMember(ctx context.Context, actorID, projectID, userID, roleName string) (*domain.ProjectMember, error)

	// UpdateMemberRole changes a member's role. Requires admin rank.
	UpdateMemberRole(ctx context.Context, actorID, projectID, userID, roleName string) error

	// RemoveMember deletes a membership. Requires admin rank.
	RemoveMember(ctx context.Context, actorID, projectID, userID string) error

	// ListMembers returns a project's membership with profile and role
	// details. Requires membership.
	ListMembers(ctx context.Context, actorID, projectID string) ([]MemberInfo, error)

	// Roles returns the runtime-loaded role enumeration.
	Roles(ctx context.Context) ([]domain.Role, error)

	// FindUser resolves an email to a profile so membership can be
	// granted by email. Requires an authenticated caller.
	FindUser(ctx context.Context, actorID, email string) (*domain.UserProfile, error)

	// Authority resolves the role the acting user holds on a project.
	Authority(ctx context.Context, actorID, projectID string) (*domain.Role, error)
}
