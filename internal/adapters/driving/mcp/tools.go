package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"the search query to find pages"`
	Project string `json:"project,omitempty" jsonschema:"optional project slug to restrict the search to"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	PageID  string  `json:"page_id"`
	Title   string  `json:"title"`
	Project string  `json:"project"`
	Path    string  `json:"path"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet,omitempty"`
}

// ReadPageInput is the input schema for the read_page tool.
type ReadPageInput struct {
	Project string `json:"project" jsonschema:"the project slug"`
	Path    string `json:"path" jsonschema:"the slug path of the page, e.g. guides/setup"`
}

// ReadPageOutput is the output schema for the read_page tool.
type ReadPageOutput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search published documentation pages",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_page",
		Description: "Read a published documentation page by project slug and page path",
	}, s.handleReadPage)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{
		Limit:      limit,
		PublicOnly: true,
	}

	if input.Project != "" {
		if s.ports.Project == nil {
			return nil, SearchOutput{}, errors.New("project filtering is not available")
		}
		project, err := s.ports.Project.GetBySlug(ctx, "", input.Project)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("resolving project: %w", err)
		}
		opts.ProjectIDs = []string{project.ID}
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			PageID:  results[i].PageID,
			Title:   results[i].Title,
			Project: results[i].ProjectName,
			Path:    results[i].Path,
			Score:   results[i].Rank,
			Snippet: results[i].Snippet,
		}
	}

	return nil, output, nil
}

// handleReadPage handles the read_page tool invocation.
func (s *Server) handleReadPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadPageInput,
) (*mcp.CallToolResult, ReadPageOutput, error) {
	if s.ports.Project == nil || s.ports.Page == nil {
		return nil, ReadPageOutput{}, errors.New("page reading is not available")
	}

	project, err := s.ports.Project.GetBySlug(ctx, "", input.Project)
	if err != nil {
		return nil, ReadPageOutput{}, fmt.Errorf("resolving project: %w", err)
	}

	page, err := s.ports.Page.GetByPath(ctx, "", project.ID, input.Path)
	if err != nil {
		return nil, ReadPageOutput{}, fmt.Errorf("reading page: %w", err)
	}

	return nil, ReadPageOutput{
		Title:       page.Title,
		Description: page.Description,
		Content:     page.Content,
	}, nil
}
