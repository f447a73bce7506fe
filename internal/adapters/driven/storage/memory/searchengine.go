package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure SearchEngine implements the interface.
var _ driven.SearchEngine = (*SearchEngine)(nil)

// SearchEngine is a naive in-memory implementation of
// driven.SearchEngine for tests. It scans the shared page and project
// stores and scores by term frequency; ranking quality is not the
// point, observable behaviour is.
type SearchEngine struct {
	pages    *PageStore
	projects *ProjectStore

	// Calls counts Search invocations, letting tests assert the
	// short-term gate never reaches the engine.
	Calls int
}

// NewSearchEngine creates a new in-memory search engine over the
// given stores.
func NewSearchEngine(pages *PageStore, projects *ProjectStore) *SearchEngine {
	return &SearchEngine{pages: pages, projects: projects}
}

// Search performs a case-insensitive substring match over page titles
// and content.
func (e *SearchEngine) Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.PageSearchResult, error) {
	e.Calls++
	needle := strings.ToLower(term)

	var results []domain.PageSearchResult //nolint:prealloc // size unknown until matched
	projects, err := e.projects.List(ctx, "")
	if err != nil {
		return nil, err
	}

	for _, project := range projects {
		if opts.PublicOnly && !project.IsPublic {
			continue
		}
		if len(opts.ProjectIDs) > 0 && !containsString(opts.ProjectIDs, project.ID) {
			continue
		}

		pages, err := e.pages.ListByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			if opts.PublicOnly && !page.IsPublished {
				continue
			}
			haystack := strings.ToLower(page.Title + " " + page.Content)
			count := strings.Count(haystack, needle)
			if count == 0 {
				continue
			}
			results = append(results, domain.PageSearchResult{
				PageID:      page.ID,
				Title:       page.Title,
				ProjectID:   project.ID,
				ProjectName: project.Name,
				Path:        e.pagePath(ctx, page),
				Snippet:     snippet(page.Content, needle),
				Rank:        float64(count),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Rank > results[j].Rank })

	if opts.Offset >= len(results) {
		return []domain.PageSearchResult{}, nil
	}
	results = results[opts.Offset:]
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// pagePath walks the ancestor chain and joins the slugs, root first.
func (e *SearchEngine) pagePath(ctx context.Context, page domain.Page) string {
	slugs := []string{page.Slug}
	for parent := page.ParentID; parent != nil; {
		ancestor, err := e.pages.Get(ctx, *parent)
		if err != nil {
			break
		}
		slugs = append([]string{ancestor.Slug}, slugs...)
		parent = ancestor.ParentID
	}
	return domain.PagePath(slugs)
}

func snippet(content, needle string) string {
	idx := strings.Index(strings.ToLower(content), needle)
	if idx < 0 {
		return ""
	}
	start := idx - 30
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + 30
	if end > len(content) {
		end = len(content)
	}
	return content[start:end]
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
