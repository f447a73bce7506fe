package domain

import "strings"

// MinSearchTermLength is the shortest term that triggers a search.
// Shorter terms short-circuit to an empty result set without touching
// the search engine.
const MinSearchTermLength = 2

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// ProjectIDs filters to specific projects.
	ProjectIDs []string

	// PublicOnly restricts results to published pages of public projects.
	// Set for unauthenticated callers.
	PublicOnly bool
}

// PageSearchResult is a single search hit. Ephemeral: produced per
// query, never persisted.
type PageSearchResult struct {
	// PageID is the matched page.
	PageID string

	// Title is the page title.
	Title string

	// ProjectID identifies the owning project.
	ProjectID string

	// ProjectName is the owning project's display name.
	ProjectName string

	// Path is the slug path of the page within its project.
	Path string

	// Snippet is a highlighted excerpt around the matched terms.
	Snippet string

	// Rank is the relevance score. Higher ranks sort first.
	Rank float64
}

// SearchTermTooShort reports whether a trimmed term is below the
// minimum searchable length.
func SearchTermTooShort(term string) bool {
	return len([]rune(strings.TrimSpace(term))) < MinSearchTermLength
}
