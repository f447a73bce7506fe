package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit is used when the caller does not set one.
const defaultSearchLimit = 20

// SearchService provides ranked page search.
type SearchService struct {
	engine driven.SearchEngine
}

// NewSearchService creates a new search service.
func NewSearchService(engine driven.SearchEngine) *SearchService {
	return &SearchService{engine: engine}
}

// Search performs full-text search across page content. Terms below
// the minimum length short-circuit to an empty result set without a
// round-trip to the engine.
func (s *SearchService) Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.PageSearchResult, error) {
	logger.Section("Search Execution")
	term = strings.TrimSpace(term)
	logger.Debug("Term: %q", term)

	if domain.SearchTermTooShort(term) {
		logger.Debug("Term below minimum length, returning no results")
		return []domain.PageSearchResult{}, nil
	}

	if opts.Limit <= 0 {
		opts.Limit = defaultSearchLimit
	}
	logger.Debug("Limit: %d, Offset: %d, PublicOnly: %t", opts.Limit, opts.Offset, opts.PublicOnly)

	results, err := s.engine.Search(ctx, term, opts)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("Results: %d", len(results))
	return results, nil
}
