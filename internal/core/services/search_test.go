package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/storage/memory"
	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// searchFixture seeds two projects with pages and returns the service
// with its engine, so tests can observe engine round-trips.
func searchFixture(t *testing.T) (*SearchService, *memory.SearchEngine, *domain.Project, *domain.Project) {
	t.Helper()
	s := newStores()
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	projectSvc := newProjectService(s)
	pageSvc := NewPageService(s.pages, s.projects, s.members, s.roles)

	private, err := projectSvc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Private Docs"})
	require.NoError(t, err)
	public, err := projectSvc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Public Docs", IsPublic: true})
	require.NoError(t, err)

	published := true
	page, err := pageSvc.Create(ctx, owner.ID, public.ID, driving.CreatePageInput{
		Title:   "Install Guide",
		Content: "Run the installer, then verify the install worked.",
	})
	require.NoError(t, err)
	_, err = pageSvc.Update(ctx, owner.ID, page.ID, driving.UpdatePageInput{IsPublished: &published})
	require.NoError(t, err)

	_, err = pageSvc.Create(ctx, owner.ID, private.ID, driving.CreatePageInput{
		Title:   "Internal Install Notes",
		Content: "Private install steps.",
	})
	require.NoError(t, err)

	engine := memory.NewSearchEngine(s.pages, s.projects)
	return NewSearchService(engine), engine, private, public
}

func TestSearchService_Search(t *testing.T) {
	svc, _, private, public := searchFixture(t)
	ctx := context.Background()

	results, err := svc.Search(ctx, "install", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Ranked by match count: the public guide mentions the term more.
	assert.Equal(t, public.ID, results[0].ProjectID)
	assert.Equal(t, private.ID, results[1].ProjectID)
	assert.NotEmpty(t, results[0].Snippet)
}

func TestSearchService_Search_NestedPagePath(t *testing.T) {
	ctx := context.Background()

	stores := newStores()
	owner := stores.seedUser(t, "owner@example.com")
	projectSvc := newProjectService(stores)
	pages := NewPageService(stores.pages, stores.projects, stores.members, stores.roles)

	project, err := projectSvc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Docs"})
	require.NoError(t, err)

	guides, err := pages.Create(ctx, owner.ID, project.ID, driving.CreatePageInput{Title: "Guides"})
	require.NoError(t, err)
	_, err = pages.Create(ctx, owner.ID, project.ID, driving.CreatePageInput{
		Title:    "Setup",
		ParentID: &guides.ID,
		Content:  "Configure the flux capacitor before first use.",
	})
	require.NoError(t, err)

	search := NewSearchService(memory.NewSearchEngine(stores.pages, stores.projects))
	results, err := search.Search(ctx, "capacitor", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	// The path carries the ancestor slugs, not just the page's own.
	assert.Equal(t, "guides/setup", results[0].Path)
}

func TestSearchService_Search_TermTooShort(t *testing.T) {
	svc, engine, _, _ := searchFixture(t)
	ctx := context.Background()

	for _, term := range []string{"", " ", "a", " a "} {
		results, err := svc.Search(ctx, term, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	}

	// Short terms never reach the engine.
	assert.Equal(t, 0, engine.Calls)
}

func TestSearchService_Search_TwoCharTermAllowed(t *testing.T) {
	svc, engine, _, _ := searchFixture(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, "in", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Calls)
}

func TestSearchService_Search_PublicOnly(t *testing.T) {
	svc, _, _, public := searchFixture(t)
	ctx := context.Background()

	results, err := svc.Search(ctx, "install", domain.SearchOptions{PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, public.ID, results[0].ProjectID)
}

func TestSearchService_Search_ProjectFilter(t *testing.T) {
	svc, _, private, _ := searchFixture(t)
	ctx := context.Background()

	results, err := svc.Search(ctx, "install", domain.SearchOptions{ProjectIDs: []string{private.ID}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, private.ID, results[0].ProjectID)
}

func TestSearchService_Search_Pagination(t *testing.T) {
	svc, _, _, _ := searchFixture(t)
	ctx := context.Background()

	page1, err := svc.Search(ctx, "install", domain.SearchOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page1, 1)

	page2, err := svc.Search(ctx, "install", domain.SearchOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].PageID, page2[0].PageID)

	empty, err := svc.Search(ctx, "install", domain.SearchOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
