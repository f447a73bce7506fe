package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

const (
	// uriScheme is the custom URI scheme for DocVault resources.
	uriScheme = "docvault://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing public projects.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "projects",
		Name:        "projects",
		Description: "List of all public documentation projects",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)

	// Template for a project's page tree.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "projects/{slug}/pages",
		Name:        "project-pages",
		Description: "Page tree of a public project",
		MIMEType:    "application/json",
	}, s.handlePagesResource)
}

// handleProjectsResource returns a list of all public projects.
func (s *Server) handleProjectsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Project == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	projects, err := s.ports.Project.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	// Build simplified project list.
	type projectInfo struct {
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}

	infos := make([]projectInfo, len(projects))
	for i := range projects {
		infos[i] = projectInfo{
			Slug:        projects[i].Slug,
			Name:        projects[i].Name,
			Description: projects[i].Description,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling projects: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePagesResource returns the page tree of a public project.
func (s *Server) handlePagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Project == nil || s.ports.Page == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract slug from URI: docvault://projects/{slug}/pages
	slug := extractProjectSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	project, err := s.ports.Project.GetBySlug(ctx, "", slug)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tree, err := s.ports.Page.Tree(ctx, "", project.ID)
	if err != nil {
		return nil, fmt.Errorf("loading page tree: %w", err)
	}

	data, err := json.MarshalIndent(flattenPageTree(tree), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pages: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// pageInfo is a flattened tree entry.
type pageInfo struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// flattenPageTree turns the nested page forest into a path-ordered list.
func flattenPageTree(nodes []driving.PageNode) []pageInfo {
	infos := make([]pageInfo, 0, len(nodes))
	for i := range nodes {
		infos = append(infos, pageInfo{
			Title: nodes[i].Page.Title,
			Path:  nodes[i].Path,
		})
		infos = append(infos, flattenPageTree(nodes[i].Children)...)
	}
	return infos
}

// extractProjectSlug extracts the slug from a URI like docvault://projects/{slug}/pages.
func extractProjectSlug(uri string) string {
	const prefix = uriScheme + "projects/"
	const suffix = "/pages"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
