// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - UserStore / SessionStore / ResetStore: Account and session persistence
//   - RoleStore: Runtime-loaded permission levels
//   - ProjectStore / MemberStore: Project and membership persistence
//   - PageStore: Page tree persistence
//   - VersionStore: Version lifecycle persistence, including the
//     transactional publish and restore operations
//   - SearchEngine: Full-text search over page content
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BlobStore: Object storage for logos/avatars. Without it, logo
//     upload is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
