package driven

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// ProjectStore persists projects.
type ProjectStore interface {
	// Save stores or updates a project.
	Save(ctx context.Context, project domain.Project) error

	// Get retrieves a project by ID.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// GetBySlug retrieves a project by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)

	// List returns projects the given user is a member of.
	// An empty userID lists all projects.
	List(ctx context.Context, userID string) ([]domain.Project, error)

	// ListPublic returns all public projects.
	ListPublic(ctx context.Context) ([]domain.Project, error)
}

// MemberStore persists project memberships.
type MemberStore interface {
	// Add creates a membership. Fails with domain.ErrAlreadyExists
	// when the (project, user) pair already has one.
	Add(ctx context.Context, member domain.ProjectMember) error

	// Get retrieves the membership for a (project, user) pair.
	Get(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error)

	// UpdateRole changes the role of an existing membership.
	UpdateRole(ctx context.Context, projectID, userID, roleID string) error

	// Remove deletes a membership.
	Remove(ctx context.Context, projectID, userID string) error

	// List returns all memberships for a project.
	List(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}
