package driving

import (
	"context"
	"io"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// CreateProjectInput carries the caller-supplied fields for a new project.
type CreateProjectInput struct {
	// Name is the project name. Required; the slug is derived from it.
	Name string

	// Description is an optional summary.
	Description string

	// IsPublic exposes published content without authentication.
	IsPublic bool
}

// UpdateProjectInput carries mutable project fields. Nil pointers
// leave the current value untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// ProjectService manages projects.
type ProjectService interface {
	// Create creates a project. The acting user becomes an admin member.
	Create(ctx context.Context, actorID string, in CreateProjectInput) (*domain.Project, error)

	// Get retrieves a project by ID, gated on membership or public visibility.
	Get(ctx context.Context, actorID, projectID string) (*domain.Project, error)

	// GetBySlug retrieves a project by slug with the same gating.
	GetBySlug(ctx context.Context, actorID, slug string) (*domain.Project, error)

	// List returns projects the acting user is a member of.
	List(ctx context.Context, actorID string) ([]domain.Project, error)

	// ListPublic returns all public projects. No authentication required.
	ListPublic(ctx context.Context) ([]domain.Project, error)

	// Update mutates project settings. Requires admin rank.
	Update(ctx context.Context, actorID, projectID string, in UpdateProjectInput) (*domain.Project, error)

	// SetLogo uploads a logo blob and records its path. Requires admin rank.
	// Returns the public URL of the stored logo.
	SetLogo(ctx context.Context, actorID, projectID, filename string, r io.Reader) (string, error)
}
