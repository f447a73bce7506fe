package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// versionStore implements driven.VersionStore.
type versionStore struct {
	store *Store
}

var _ driven.VersionStore = (*versionStore)(nil)

const versionColumns = `id, project_id, version_number, name, notes,
	is_draft, is_current, is_archived, page_count, created_by, created_at, published_at`

// CreateSnapshot stores a new draft version together with its page
// snapshots in one transaction.
func (s *versionStore) CreateSnapshot(ctx context.Context, version domain.ProjectVersion, snapshots []domain.PageVersion) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO project_versions (id, project_id, version_number, name, notes,
			is_draft, is_current, is_archived, page_count, created_by, created_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, version.ID, version.ProjectID, version.VersionNumber, version.Name, version.Notes,
		version.IsDraft, version.IsCurrent, version.IsArchived, version.PageCount,
		version.CreatedBy, version.CreatedAt, nullTime(version.PublishedAt))
	if err != nil {
		return fmt.Errorf("saving version: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO page_versions (id, version_id, page_id, title, description, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		if _, err := stmt.ExecContext(ctx, snap.ID, snap.VersionID, snap.PageID,
			snap.Title, snap.Description, snap.Content, snap.CreatedAt); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a version by ID.
func (s *versionStore) Get(ctx context.Context, id string) (*domain.ProjectVersion, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+versionColumns+" FROM project_versions WHERE id = ?", id)
	return scanVersionRow(row)
}

// List returns a project's versions, newest first.
func (s *versionStore) List(ctx context.Context, projectID string, includeArchived bool) ([]domain.ProjectVersion, error) {
	query := "SELECT " + versionColumns + " FROM project_versions WHERE project_id = ?"
	if !includeArchived {
		query += " AND is_archived = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.store.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.ProjectVersion //nolint:prealloc // size unknown from query
	for rows.Next() {
		version, err := scanVersionRows(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}
	return versions, nil
}

// GetCurrent retrieves the project's current version.
func (s *versionStore) GetCurrent(ctx context.Context, projectID string) (*domain.ProjectVersion, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+versionColumns+" FROM project_versions WHERE project_id = ? AND is_current = 1", projectID)
	return scanVersionRow(row)
}

// Publish transitions a draft to published and makes it current.
// The previous current flag is cleared in the same transaction, so the
// project never has two current versions.
func (s *versionStore) Publish(ctx context.Context, id string, publishedAt time.Time) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var projectID string
	row := tx.QueryRowContext(ctx, "SELECT project_id FROM project_versions WHERE id = ?", id)
	if err := row.Scan(&projectID); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return fmt.Errorf("looking up version: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE project_versions SET is_current = 0 WHERE project_id = ? AND is_current = 1", projectID); err != nil {
		return fmt.Errorf("clearing current version: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE project_versions SET is_draft = 0, is_current = 1, published_at = ? WHERE id = ?
	`, publishedAt, id); err != nil {
		return fmt.Errorf("publishing version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Archive marks a version archived.
func (s *versionStore) Archive(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE project_versions SET is_archived = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("archiving version: %w", err)
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

// Delete removes a version. The schema cascades the delete to its
// snapshots.
func (s *versionStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM project_versions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting version: %w", err)
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

// Restore overwrites live page content from the version's snapshots
// and marks the version current and unarchived, all in one
// transaction. Snapshots of pages deleted since the version was taken
// are skipped. Returns the number of pages restored.
func (s *versionStore) Restore(ctx context.Context, id string) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var projectID string
	row := tx.QueryRowContext(ctx, "SELECT project_id FROM project_versions WHERE id = ?", id)
	if err := row.Scan(&projectID); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("looking up version: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT page_id, title, description, content FROM page_versions WHERE version_id = ?
	`, id)
	if err != nil {
		return 0, fmt.Errorf("querying snapshots: %w", err)
	}

	type snapshot struct {
		pageID, title, description, content string
	}
	var snapshots []snapshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		var snap snapshot
		if err := rows.Scan(&snap.pageID, &snap.title, &snap.description, &snap.content); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterating snapshots: %w", err)
	}
	rows.Close()

	restored := 0
	now := time.Now().UTC()
	for _, snap := range snapshots {
		result, err := tx.ExecContext(ctx, `
			UPDATE pages SET title = ?, description = ?, content = ?, updated_at = ? WHERE id = ?
		`, snap.title, snap.description, snap.content, now, snap.pageID)
		if err != nil {
			return 0, fmt.Errorf("restoring page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("checking rows affected: %w", err)
		}
		restored += int(affected)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE project_versions SET is_current = 0 WHERE project_id = ? AND is_current = 1", projectID); err != nil {
		return 0, fmt.Errorf("clearing current version: %w", err)
	}
	// Restoring an archived version brings it back into circulation;
	// the current version must never be hidden from the default list.
	if _, err := tx.ExecContext(ctx,
		"UPDATE project_versions SET is_current = 1, is_archived = 0 WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("marking version current: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return restored, nil
}

// ListSnapshots returns the page snapshots of a version.
func (s *versionStore) ListSnapshots(ctx context.Context, versionID string) ([]domain.PageVersion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, version_id, page_id, title, description, content, created_at
		FROM page_versions WHERE version_id = ? ORDER BY title
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.PageVersion //nolint:prealloc // size unknown from query
	for rows.Next() {
		var snap domain.PageVersion
		if err := rows.Scan(&snap.ID, &snap.VersionID, &snap.PageID,
			&snap.Title, &snap.Description, &snap.Content, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// scanVersionRow scans a single version row.
func scanVersionRow(row *sql.Row) (*domain.ProjectVersion, error) {
	var version domain.ProjectVersion
	var publishedAt sql.NullTime
	if err := row.Scan(&version.ID, &version.ProjectID, &version.VersionNumber,
		&version.Name, &version.Notes, &version.IsDraft, &version.IsCurrent,
		&version.IsArchived, &version.PageCount, &version.CreatedBy,
		&version.CreatedAt, &publishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning version: %w", err)
	}
	if publishedAt.Valid {
		version.PublishedAt = publishedAt.Time
	}
	return &version, nil
}

// scanVersionRows scans a version from *sql.Rows.
func scanVersionRows(rows *sql.Rows) (*domain.ProjectVersion, error) {
	var version domain.ProjectVersion
	var publishedAt sql.NullTime
	if err := rows.Scan(&version.ID, &version.ProjectID, &version.VersionNumber,
		&version.Name, &version.Notes, &version.IsDraft, &version.IsCurrent,
		&version.IsArchived, &version.PageCount, &version.CreatedBy,
		&version.CreatedAt, &publishedAt); err != nil {
		return nil, fmt.Errorf("scanning version: %w", err)
	}
	if publishedAt.Valid {
		version.PublishedAt = publishedAt.Time
	}
	return &version, nil
}
