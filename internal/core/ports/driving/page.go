package driving

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// CreatePageInput carries the caller-supplied fields for a new page.
type CreatePageInput struct {
	// Title is required; the slug is derived from it.
	Title string

	// ParentID places the page under a parent. Nil creates a root page.
	ParentID *string

	// Description is an optional summary.
	Description string

	// Content is the structured document payload. Empty makes the
	// page a pure container.
	Content string

	// Icon is an optional display icon identifier.
	Icon string
}

// UpdatePageInput carries mutable page fields. Nil pointers leave the
// current value untouched.
type UpdatePageInput struct {
	Title       *string
	Description *string
	Content     *string
	Icon        *string
	IsPublished *bool
}

// PageNode is a page with its resolved slug path and nested children,
// ordered by sibling index.
type PageNode struct {
	Page     domain.Page
	Path     string
	Children []PageNode
}

// PageService manages a project's page tree. All mutations require
// editor rank on the project.
type PageService interface {
	// Create adds a page at the end of its sibling list.
	Create(ctx context.Context, actorID, projectID string, in CreatePageInput) (*domain.Page, error)

	// Get retrieves a page, gated on membership or public visibility.
	Get(ctx context.Context, actorID, pageID string) (*domain.Page, error)

	// GetByPath resolves a slug path ("guides/setup") within a project.
	GetByPath(ctx context.Context, actorID, projectID, path string) (*domain.Page, error)

	// Update mutates page fields.
	Update(ctx context.Context, actorID, pageID string, in UpdatePageInput) (*domain.Page, error)

	// Move re-parents a page and/or changes its sibling position.
	// A nil newParentID moves the page to the root level. Rejects
	// moves that would make a page its own descendant.
	Move(ctx context.Context, actorID, pageID string, newParentID *string, newIndex int) error

	// Delete removes a page and all its descendants.
	Delete(ctx context.Context, actorID, pageID string) error

	// Tree returns the project's page forest, ordered and with paths.
	Tree(ctx context.Context, actorID, projectID string) ([]PageNode, error)

	// Path returns the slug path of a page.
	Path(ctx context.Context, pageID string) (string, error)
}
