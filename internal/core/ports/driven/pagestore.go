package driven

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// PageStore persists a project's page tree.
//
// Sibling order is a dense integer sequence. Callers hand the store a
// complete ordered sibling list when renumbering; the store applies it
// in a single transaction.
type PageStore interface {
	// Save stores or updates a page.
	Save(ctx context.Context, page domain.Page) error

	// Get retrieves a page by ID.
	Get(ctx context.Context, id string) (*domain.Page, error)

	// ListByProject returns all pages of a project ordered by
	// parent then order index.
	ListByProject(ctx context.Context, projectID string) ([]domain.Page, error)

	// ListChildren returns the ordered children of a parent.
	// A nil parentID lists the root pages.
	ListChildren(ctx context.Context, projectID string, parentID *string) ([]domain.Page, error)

	// Move re-parents a page and renumbers the destination sibling
	// list in one transaction. orderedSiblings is the complete child
	// list of newParentID after the move, in display order.
	Move(ctx context.Context, pageID string, newParentID *string, orderedSiblings []string) error

	// Renumber rewrites order indexes for an ordered sibling list.
	Renumber(ctx context.Context, orderedSiblings []string) error

	// Delete removes a page and all its descendants.
	Delete(ctx context.Context, id string) error
}
