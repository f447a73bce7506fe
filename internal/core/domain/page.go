package domain

import (
	"strings"
	"time"
)

// Page is a node in a project's hierarchical content tree.
// A page with empty content is a pure container (organisational node).
type Page struct {
	// ID is the unique identifier for the page.
	ID string

	// ProjectID links to the owning Project.
	ProjectID string

	// ParentID links to the parent page. Nil for root pages;
	// a project's pages form a forest (multiple roots allowed).
	ParentID *string

	// Title is the human-readable title. Required.
	Title string

	// Slug is derived from Title. Unique within the sibling scope.
	Slug string

	// Description is an optional free-text summary.
	Description string

	// Content is the structured document payload. Opaque JSON;
	// empty for pure containers.
	Content string

	// IsPublished controls whether the page is part of the
	// publicly served content.
	IsPublished bool

	// OrderIndex defines a dense total order among siblings,
	// starting at 0. Insertion renumbers siblings.
	OrderIndex int

	// Icon is an optional display icon identifier.
	Icon string

	// CreatedBy is the user who created the page.
	CreatedBy string

	// UpdatedBy is the user who last modified the page.
	UpdatedBy string

	// CreatedAt is when the page was created.
	CreatedAt time.Time

	// UpdatedAt is when the page was last updated.
	UpdatedAt time.Time
}

// Validate checks the page has the minimum required fields.
func (p *Page) Validate() error {
	if p.ID == "" || p.ProjectID == "" || p.Title == "" || p.Slug == "" {
		return ErrInvalidInput
	}
	return nil
}

// IsContainer reports whether the page carries no content payload.
func (p *Page) IsContainer() bool {
	return strings.TrimSpace(p.Content) == ""
}

// PagePath joins ancestor slugs into a path, root first.
// Example: []{"guides", "setup"} -> "guides/setup".
func PagePath(slugs []string) string {
	return strings.Join(slugs, "/")
}
