package driven

import (
	"context"
	"time"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// VersionStore persists the version lifecycle.
//
// The publish and restore operations carry the invariant that at most
// one version per project is current, so implementations must apply
// them atomically: the single UPDATE that clears the previous current
// flag and the one that sets the new one belong to the same
// transaction, as does the bulk page overwrite during restore.
type VersionStore interface {
	// CreateSnapshot stores a new draft version together with all of
	// its page snapshots in one transaction.
	CreateSnapshot(ctx context.Context, version domain.ProjectVersion, snapshots []domain.PageVersion) error

	// Get retrieves a version by ID.
	Get(ctx context.Context, id string) (*domain.ProjectVersion, error)

	// List returns a project's versions, newest first. Archived
	// versions are excluded unless includeArchived is set.
	List(ctx context.Context, projectID string, includeArchived bool) ([]domain.ProjectVersion, error)

	// GetCurrent retrieves the project's current version.
	GetCurrent(ctx context.Context, projectID string) (*domain.ProjectVersion, error)

	// Publish transitions a draft to published, stamps publishedAt,
	// marks it current and clears the previous current flag, all in
	// one transaction.
	Publish(ctx context.Context, id string, publishedAt time.Time) error

	// Archive marks a version archived.
	Archive(ctx context.Context, id string) error

	// Delete removes a version and its snapshots.
	Delete(ctx context.Context, id string) error

	// Restore overwrites live page content, title and description from
	// the version's snapshots and marks the version current, all in one
	// transaction. Returns the number of pages overwritten.
	Restore(ctx context.Context, id string) (int, error)

	// ListSnapshots returns the page snapshots of a version.
	ListSnapshots(ctx context.Context, versionID string) ([]domain.PageVersion, error)
}
