package mcp

import (
	"context"
	"io"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.PageSearchResult
	lastOpts domain.SearchOptions
	err      error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.PageSearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockProjectService is a mock implementation of driving.ProjectService.
type mockProjectService struct {
	project  *domain.Project
	projects []domain.Project
	err      error
}

func (m *mockProjectService) Create(_ context.Context, _ string, _ driving.CreateProjectInput) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) Get(_ context.Context, _, _ string) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) GetBySlug(_ context.Context, _, _ string) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) List(_ context.Context, _ string) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockProjectService) ListPublic(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockProjectService) Update(_ context.Context, _, _ string, _ driving.UpdateProjectInput) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) SetLogo(_ context.Context, _, _, _ string, _ io.Reader) (string, error) {
	return "", m.err
}

// mockPageService is a mock implementation of driving.PageService.
type mockPageService struct {
	page *domain.Page
	tree []driving.PageNode
	err  error
}

func (m *mockPageService) Create(_ context.Context, _, _ string, _ driving.CreatePageInput) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) Get(_ context.Context, _, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) GetByPath(_ context.Context, _, _, _ string) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) Update(_ context.Context, _, _ string, _ driving.UpdatePageInput) (*domain.Page, error) {
	return m.page, m.err
}

func (m *mockPageService) Move(_ context.Context, _, _ string, _ *string, _ int) error {
	return m.err
}

func (m *mockPageService) Delete(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockPageService) Tree(_ context.Context, _, _ string) ([]driving.PageNode, error) {
	return m.tree, m.err
}

func (m *mockPageService) Path(_ context.Context, _ string) (string, error) {
	return "", m.err
}
