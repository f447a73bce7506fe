package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// searchEngine implements driven.SearchEngine on the FTS5 index that
// the page triggers keep in sync.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// Search runs a full-text query over page titles, descriptions and
// content, ranked by bm25.
func (e *searchEngine) Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.PageSearchResult, error) {
	// page_paths resolves each page's slug path from its ancestor
	// chain, so nested results report "guides/setup" rather than the
	// leaf slug alone.
	query := `
		WITH RECURSIVE page_paths(id, path) AS (
			SELECT id, slug FROM pages WHERE parent_id IS NULL
			UNION ALL
			SELECT c.id, pp.path || '/' || c.slug
			FROM pages c JOIN page_paths pp ON pp.id = c.parent_id
		)
		SELECT p.id, p.title, p.project_id, pr.name, pp.path,
			snippet(pages_fts, 2, '', '', '...', 12),
			bm25(pages_fts)
		FROM pages_fts
		JOIN pages p ON p.rowid = pages_fts.rowid
		JOIN projects pr ON pr.id = p.project_id
		JOIN page_paths pp ON pp.id = p.id
		WHERE pages_fts MATCH ?
	`
	args := []any{ftsQuote(term)}

	if opts.PublicOnly {
		query += " AND pr.is_public = 1 AND p.is_published = 1"
	}
	if len(opts.ProjectIDs) > 0 {
		query += " AND p.project_id IN (?" + strings.Repeat(", ?", len(opts.ProjectIDs)-1) + ")"
		for _, id := range opts.ProjectIDs {
			args = append(args, id)
		}
	}

	query += " ORDER BY bm25(pages_fts) LIMIT ? OFFSET ?"
	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // No limit
	}
	args = append(args, limit, opts.Offset)

	rows, err := e.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying search index: %w", err)
	}
	defer rows.Close()

	results := []domain.PageSearchResult{}
	for rows.Next() {
		var result domain.PageSearchResult
		var score float64
		if err := rows.Scan(&result.PageID, &result.Title, &result.ProjectID,
			&result.ProjectName, &result.Path, &result.Snippet, &score); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		// bm25 scores are negative, lower is better. Flip the sign so
		// higher means more relevant.
		result.Rank = -score
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}

// ftsQuote wraps the term in a quoted FTS5 string so user input can
// never be parsed as query syntax.
func ftsQuote(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
}
