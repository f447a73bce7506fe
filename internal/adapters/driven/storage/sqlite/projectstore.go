package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// ==================== Project Store ====================

// projectStore implements driven.ProjectStore.
type projectStore struct {
	store *Store
}

var _ driven.ProjectStore = (*projectStore)(nil)

// Save stores or updates a project.
func (s *projectStore) Save(ctx context.Context, project domain.Project) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, slug, description, is_public, logo_path, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			description = excluded.description,
			is_public = excluded.is_public,
			logo_path = excluded.logo_path,
			updated_at = excluded.updated_at
	`, project.ID, project.Name, project.Slug, project.Description, project.IsPublic,
		project.LogoPath, project.CreatedBy, project.CreatedAt, project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID.
func (s *projectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, is_public, logo_path, created_by, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)
	return scanProject(row)
}

// GetBySlug retrieves a project by slug.
func (s *projectStore) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, is_public, logo_path, created_by, created_at, updated_at
		FROM projects WHERE slug = ?
	`, slug)
	return scanProject(row)
}

// List returns projects the given user is a member of.
// An empty userID lists all projects.
func (s *projectStore) List(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `
		SELECT id, name, slug, description, is_public, logo_path, created_by, created_at, updated_at
		FROM projects ORDER BY name
	`
	args := []any{}
	if userID != "" {
		query = `
			SELECT p.id, p.name, p.slug, p.description, p.is_public, p.logo_path, p.created_by, p.created_at, p.updated_at
			FROM projects p
			JOIN project_members m ON m.project_id = p.id
			WHERE m.user_id = ?
			ORDER BY p.name
		`
		args = append(args, userID)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// ListPublic returns all public projects.
func (s *projectStore) ListPublic(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, slug, description, is_public, logo_path, created_by, created_at, updated_at
		FROM projects WHERE is_public = 1 ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying public projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(&project.ID, &project.Name, &project.Slug, &project.Description,
		&project.IsPublic, &project.LogoPath, &project.CreatedBy,
		&project.CreatedAt, &project.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &project, nil
}

func scanProjects(rows *sql.Rows) ([]domain.Project, error) {
	var projects []domain.Project //nolint:prealloc // size unknown from query
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(&project.ID, &project.Name, &project.Slug, &project.Description,
			&project.IsPublic, &project.LogoPath, &project.CreatedBy,
			&project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// ==================== Member Store ====================

// memberStore implements driven.MemberStore.
type memberStore struct {
	store *Store
}

var _ driven.MemberStore = (*memberStore)(nil)

// Add creates a membership. Fails with ErrAlreadyExists when the
// (project, user) pair already has one.
func (s *memberStore) Add(ctx context.Context, member domain.ProjectMember) error {
	result, err := s.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO project_members (project_id, user_id, role_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, member.ProjectID, member.UserID, member.RoleID, member.CreatedAt, member.UpdatedAt)

	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

// Get retrieves the membership for a (project, user) pair.
func (s *memberStore) Get(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT project_id, user_id, role_id, created_at, updated_at
		FROM project_members WHERE project_id = ? AND user_id = ?
	`, projectID, userID)

	var member domain.ProjectMember
	if err := row.Scan(&member.ProjectID, &member.UserID, &member.RoleID,
		&member.CreatedAt, &member.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning member: %w", err)
	}
	return &member, nil
}

// UpdateRole changes the role of a membership.
func (s *memberStore) UpdateRole(ctx context.Context, projectID, userID, roleID string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE project_members SET role_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE project_id = ? AND user_id = ?
	`, roleID, projectID, userID)

	if err != nil {
		return fmt.Errorf("updating member role: %w", err)
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

// Remove deletes a membership.
func (s *memberStore) Remove(ctx context.Context, projectID, userID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM project_members WHERE project_id = ? AND user_id = ?", projectID, userID)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	return nil
}

// List returns a project's memberships.
func (s *memberStore) List(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT project_id, user_id, role_id, created_at, updated_at
		FROM project_members WHERE project_id = ? ORDER BY user_id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var members []domain.ProjectMember //nolint:prealloc // size unknown from query
	for rows.Next() {
		var member domain.ProjectMember
		if err := rows.Scan(&member.ProjectID, &member.UserID, &member.RoleID,
			&member.CreatedAt, &member.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return members, nil
}
