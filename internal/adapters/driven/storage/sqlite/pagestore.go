package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// pageStore implements driven.PageStore.
type pageStore struct {
	store *Store
}

var _ driven.PageStore = (*pageStore)(nil)

const pageColumns = `id, project_id, parent_id, title, slug, description, content,
	is_published, order_index, icon, created_by, updated_by, created_at, updated_at`

// Save stores or updates a page.
func (s *pageStore) Save(ctx context.Context, page domain.Page) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pages (id, project_id, parent_id, title, slug, description, content,
			is_published, order_index, icon, created_by, updated_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id = excluded.parent_id,
			title = excluded.title,
			slug = excluded.slug,
			description = excluded.description,
			content = excluded.content,
			is_published = excluded.is_published,
			order_index = excluded.order_index,
			icon = excluded.icon,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at
	`, page.ID, page.ProjectID, page.ParentID, page.Title, page.Slug, page.Description,
		page.Content, page.IsPublished, page.OrderIndex, page.Icon,
		page.CreatedBy, page.UpdatedBy, page.CreatedAt, page.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// Get retrieves a page by ID.
func (s *pageStore) Get(ctx context.Context, id string) (*domain.Page, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE id = ?", id)

	page, err := scanPageRow(row)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListByProject returns every page of a project.
func (s *pageStore) ListByProject(ctx context.Context, projectID string) ([]domain.Page, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE project_id = ? ORDER BY order_index", projectID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// ListChildren returns the ordered children of a parent. A nil
// parentID lists the project's root pages.
func (s *pageStore) ListChildren(ctx context.Context, projectID string, parentID *string) ([]domain.Page, error) {
	var rows *sql.Rows
	var err error
	if parentID == nil {
		rows, err = s.store.db.QueryContext(ctx,
			"SELECT "+pageColumns+" FROM pages WHERE project_id = ? AND parent_id IS NULL ORDER BY order_index",
			projectID)
	} else {
		rows, err = s.store.db.QueryContext(ctx,
			"SELECT "+pageColumns+" FROM pages WHERE project_id = ? AND parent_id = ? ORDER BY order_index",
			projectID, *parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying children: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// Move re-parents a page and rewrites the destination sibling order in
// one transaction.
func (s *pageStore) Move(ctx context.Context, pageID string, newParentID *string, orderedSiblings []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	result, err := tx.ExecContext(ctx,
		"UPDATE pages SET parent_id = ? WHERE id = ?", newParentID, pageID)
	if err != nil {
		return fmt.Errorf("re-parenting page: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := renumberTx(ctx, tx, orderedSiblings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Renumber rewrites the order of a sibling list, position by position.
func (s *pageStore) Renumber(ctx context.Context, orderedSiblings []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := renumberTx(ctx, tx, orderedSiblings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Delete removes a page. The schema cascades the delete to every
// descendant page.
func (s *pageStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
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

// renumberTx assigns dense order indexes inside an open transaction.
func renumberTx(ctx context.Context, tx *sql.Tx, orderedSiblings []string) error {
	stmt, err := tx.PrepareContext(ctx, "UPDATE pages SET order_index = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, id := range orderedSiblings {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("renumbering page: %w", err)
		}
	}
	return nil
}

// scanPageRow scans a single page row.
func scanPageRow(row *sql.Row) (*domain.Page, error) {
	var page domain.Page
	var parentID sql.NullString
	if err := row.Scan(&page.ID, &page.ProjectID, &parentID, &page.Title, &page.Slug,
		&page.Description, &page.Content, &page.IsPublished, &page.OrderIndex, &page.Icon,
		&page.CreatedBy, &page.UpdatedBy, &page.CreatedAt, &page.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}
	if parentID.Valid {
		page.ParentID = &parentID.String
	}
	return &page, nil
}

// scanPages scans pages from *sql.Rows.
func scanPages(rows *sql.Rows) ([]domain.Page, error) {
	var pages []domain.Page //nolint:prealloc // size unknown from query
	for rows.Next() {
		var page domain.Page
		var parentID sql.NullString
		if err := rows.Scan(&page.ID, &page.ProjectID, &parentID, &page.Title, &page.Slug,
			&page.Description, &page.Content, &page.IsPublished, &page.OrderIndex, &page.Icon,
			&page.CreatedBy, &page.UpdatedBy, &page.CreatedAt, &page.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if parentID.Valid {
			page.ParentID = &parentID.String
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}
