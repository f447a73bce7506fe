package driving

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// CreateVersionInput carries the caller-supplied fields for a new version.
type CreateVersionInput struct {
	// VersionNumber is the display label. Required.
	VersionNumber string

	// Name is an optional release title.
	Name string

	// Notes is optional release notes text.
	Notes string
}

// VersionService drives the version lifecycle. All mutations require
// editor rank on the project.
type VersionService interface {
	// Create snapshots every live page into a new draft version.
	Create(ctx context.Context, actorID, projectID string, in CreateVersionInput) (*domain.ProjectVersion, error)

	// Get retrieves a version.
	Get(ctx context.Context, actorID, versionID string) (*domain.ProjectVersion, error)

	// List returns a project's versions, newest first.
	List(ctx context.Context, actorID, projectID string, includeArchived bool) ([]domain.ProjectVersion, error)

	// Publish transitions a draft to published and makes it current,
	// clearing the previous current version atomically.
	Publish(ctx context.Context, actorID, versionID string) (*domain.ProjectVersion, error)

	// Archive retires a non-current version.
	Archive(ctx context.Context, actorID, versionID string) error

	// Delete removes a draft, non-current version.
	Delete(ctx context.Context, actorID, versionID string) error

	// Restore overwrites live pages from the version's snapshots and
	// marks it current. Returns the number of pages restored.
	Restore(ctx context.Context, actorID, versionID string) (int, error)

	// Snapshots returns a version's page snapshots.
	Snapshots(ctx context.Context, actorID, versionID string) ([]domain.PageVersion, error)

	// SuggestNext proposes the next version number for a project.
	// Purely advisory.
	SuggestNext(ctx context.Context, projectID string) (string, error)
}
