package httpapi

import (
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the HTTP API serves.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth manages accounts and sessions.
	Auth driving.AuthService

	// Project manages projects.
	Project driving.ProjectService

	// Membership manages project membership.
	Membership driving.MembershipService

	// Page manages page trees.
	Page driving.PageService

	// Version drives the version lifecycle.
	Version driving.VersionService

	// Search provides ranked page search.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Auth == nil:
		return ErrMissingAuthService
	case p.Project == nil:
		return ErrMissingProjectService
	case p.Membership == nil:
		return ErrMissingMembershipService
	case p.Page == nil:
		return ErrMissingPageService
	case p.Version == nil:
		return ErrMissingVersionService
	case p.Search == nil:
		return ErrMissingSearchService
	}
	return nil
}
