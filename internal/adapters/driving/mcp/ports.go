package mcp

import (
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
//
// The MCP server runs unauthenticated, so every call goes through the
// anonymous path: published pages of public projects only.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Project lists and resolves public projects.
	Project driving.ProjectService

	// Page reads public page content.
	Page driving.PageService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Project and Page are optional; their tools degrade gracefully
	return nil
}
