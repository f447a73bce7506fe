package driving

import (
	"context"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// SearchService provides ranked page search to external actors.
type SearchService interface {
	// Search performs full-text search across page content. Terms
	// shorter than domain.MinSearchTermLength return an empty result
	// set without touching the engine.
	Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.PageSearchResult, error)
}
