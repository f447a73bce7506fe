// Package domain defines the core business entities for Docvault.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Project: An organisational root for documentation content
//   - Page: A node in a project's hierarchical content tree
//   - ProjectVersion / PageVersion: Named snapshots with lifecycle state
//   - ProjectMember / Role: Membership and permission levels
//   - UserProfile / Session: Accounts and authenticated sessions
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
