// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - UserStore, SessionStore, ResetStore: account and session persistence
//   - RoleStore: runtime-loaded role definitions
//   - ProjectStore, MemberStore: projects and their membership
//   - PageStore: the hierarchical page tree
//   - VersionStore: version snapshots and lifecycle state
//   - SearchEngine: full-text search over the FTS5 page index
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. The page full-text index is an external-content FTS5
// table kept in sync by triggers, so writes through PageStore never need a
// separate indexing step.
//
// # Data Location
//
// By default, the database is stored at ~/.docvault/data/docvault.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
