package driven

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// SearchEngine provides full-text search over page content.
//
// Implementations keep their index in step with PageStore writes: the
// SQLite engine does it with FTS5 triggers on the pages table, the
// in-memory engine reads the page store directly. There is no explicit
// Index call for services to forget.
type SearchEngine interface {
	// Search performs a ranked full-text query. The term has already
	// passed the minimum-length gate in the search service.
	Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.PageSearchResult, error)
}
