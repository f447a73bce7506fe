package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docvault/data/docvault.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvault", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docvault.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// ResetStore returns a ResetStore interface backed by this store.
func (s *Store) ResetStore() driven.ResetStore {
	return &resetStore{store: s}
}

// RoleStore returns a RoleStore interface backed by this store.
func (s *Store) RoleStore() driven.RoleStore {
	return &roleStore{store: s}
}

// ProjectStore returns a ProjectStore interface backed by this store.
func (s *Store) ProjectStore() driven.ProjectStore {
	return &projectStore{store: s}
}

// MemberStore returns a MemberStore interface backed by this store.
func (s *Store) MemberStore() driven.MemberStore {
	return &memberStore{store: s}
}

// PageStore returns a PageStore interface backed by this store.
func (s *Store) PageStore() driven.PageStore {
	return &pageStore{store: s}
}

// VersionStore returns a VersionStore interface backed by this store.
func (s *Store) VersionStore() driven.VersionStore {
	return &versionStore{store: s}
}

// SearchEngine returns a SearchEngine backed by the FTS5 index.
func (s *Store) SearchEngine() driven.SearchEngine {
	return &searchEngine{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== User Store ====================

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

// Save stores or updates a user profile.
func (s *userStore) Save(ctx context.Context, user domain.UserProfile) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, email, display_name, password_hash, avatar_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			password_hash = excluded.password_hash,
			avatar_path = excluded.avatar_path,
			updated_at = excluded.updated_at
	`, user.ID, user.Email, user.DisplayName, user.PasswordHash, user.AvatarPath,
		user.CreatedAt, user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID.
func (s *userStore) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, avatar_path, created_at, updated_at
		FROM user_profiles WHERE id = ?
	`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email.
func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, avatar_path, created_at, updated_at
		FROM user_profiles WHERE email = ?
	`, email)
	return scanUser(row)
}

// List returns all user profiles.
func (s *userStore) List(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, email, display_name, password_hash, avatar_path, created_at, updated_at
		FROM user_profiles ORDER BY email
	`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.UserProfile //nolint:prealloc // size unknown from query
	for rows.Next() {
		var user domain.UserProfile
		if err := rows.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
			&user.AvatarPath, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func scanUser(row *sql.Row) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.AvatarPath, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &user, nil
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save stores a session.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Get retrieves a session by token.
func (s *sessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at
		FROM sessions WHERE token = ?
	`, token)

	var session domain.Session
	if err := row.Scan(&session.Token, &session.UserID, &session.CreatedAt, &session.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return &session, nil
}

// Delete removes a session.
func (s *sessionStore) Delete(ctx context.Context, token string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteForUser removes every session of a user.
func (s *sessionStore) DeleteForUser(ctx context.Context, userID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("deleting sessions: %w", err)
	}
	return nil
}

// ==================== Reset Store ====================

// resetStore implements driven.ResetStore.
type resetStore struct {
	store *Store
}

var _ driven.ResetStore = (*resetStore)(nil)

// Save stores a password reset token.
func (s *resetStore) Save(ctx context.Context, reset domain.PasswordReset) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, created_at, expires_at, used_at)
		VALUES (?, ?, ?, ?, ?)
	`, reset.Token, reset.UserID, reset.CreatedAt, reset.ExpiresAt, nullTime(reset.UsedAt))

	if err != nil {
		return fmt.Errorf("saving reset token: %w", err)
	}
	return nil
}

// Get retrieves a reset token.
func (s *resetStore) Get(ctx context.Context, token string) (*domain.PasswordReset, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at, used_at
		FROM password_resets WHERE token = ?
	`, token)

	var reset domain.PasswordReset
	var usedAt sql.NullTime
	if err := row.Scan(&reset.Token, &reset.UserID, &reset.CreatedAt, &reset.ExpiresAt, &usedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning reset token: %w", err)
	}
	if usedAt.Valid {
		reset.UsedAt = usedAt.Time
	}
	return &reset, nil
}

// MarkUsed consumes a reset token.
func (s *resetStore) MarkUsed(ctx context.Context, token string) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE password_resets SET used_at = ? WHERE token = ?", time.Now().UTC(), token)
	if err != nil {
		return fmt.Errorf("marking reset token used: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Role Store ====================

// roleStore implements driven.RoleStore.
type roleStore struct {
	store *Store
}

var _ driven.RoleStore = (*roleStore)(nil)

// List returns all roles, lowest rank first.
func (s *roleStore) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, rank, is_default FROM roles ORDER BY rank
	`)
	if err != nil {
		return nil, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role //nolint:prealloc // size unknown from query
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Rank, &role.IsDefault); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}
	return roles, nil
}

// Get retrieves a role by ID.
func (s *roleStore) Get(ctx context.Context, id string) (*domain.Role, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, name, rank, is_default FROM roles WHERE id = ?", id)
	return scanRole(row)
}

// GetByName retrieves a role by name.
func (s *roleStore) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, name, rank, is_default FROM roles WHERE name = ?", name)
	return scanRole(row)
}

// Save stores or updates a role.
func (s *roleStore) Save(ctx context.Context, role domain.Role) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, rank, is_default)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			rank = excluded.rank,
			is_default = excluded.is_default
	`, role.ID, role.Name, role.Rank, role.IsDefault)

	if err != nil {
		return fmt.Errorf("saving role: %w", err)
	}
	return nil
}

func scanRole(row *sql.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Rank, &role.IsDefault); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning role: %w", err)
	}
	return &role, nil
}

// ==================== Helper Functions ====================

// nullTime maps the zero time to NULL.
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// nullString maps the empty string to NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
