package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ErrBlobStoreUnavailable is returned when logo upload is requested
// without a configured blob store.
var ErrBlobStoreUnavailable = errors.New("blob store not configured")

// ProjectService manages projects and their settings.
type ProjectService struct {
	projects driven.ProjectStore
	members  driven.MemberStore
	roles    driven.RoleStore
	blobs    driven.BlobStore // optional
}

// NewProjectService creates a new project service.
// The blobs parameter is optional (can be nil): without it, logo
// upload is disabled.
func NewProjectService(
	projects driven.ProjectStore,
	members driven.MemberStore,
	roles driven.RoleStore,
	blobs driven.BlobStore,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		members:  members,
		roles:    roles,
		blobs:    blobs,
	}
}

// Create creates a project. The acting user becomes a member holding
// the highest-rank role.
func (s *ProjectService) Create(ctx context.Context, actorID string, in driving.CreateProjectInput) (*domain.Project, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}

	slug := domain.Slugify(in.Name)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	// Slug is unique across the system.
	if _, err := s.projects.GetBySlug(ctx, slug); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking slug: %w", err)
	}

	allRoles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roles: %w", err)
	}
	creatorRole, ok := domain.HighestRole(allRoles)
	if !ok {
		return nil, fmt.Errorf("no roles configured: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	member := domain.ProjectMember{
		ProjectID: project.ID,
		UserID:    actorID,
		RoleID:    creatorRole.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.members.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("granting creator membership: %w", err)
	}

	logger.Info("project created: %s (%s)", project.Name, project.Slug)
	return &project, nil
}

// Get retrieves a project by ID, gated on membership or public visibility.
func (s *ProjectService) Get(ctx context.Context, actorID, projectID string) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.gate(ctx, actorID, project)
}

// GetBySlug retrieves a project by slug with the same gating as Get.
func (s *ProjectService) GetBySlug(ctx context.Context, actorID, slug string) (*domain.Project, error) {
	project, err := s.projects.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.gate(ctx, actorID, project)
}

// gate enforces read visibility: public projects are open, private
// projects require membership.
func (s *ProjectService) gate(ctx context.Context, actorID string, project *domain.Project) (*domain.Project, error) {
	if project.IsPublic {
		return project, nil
	}
	if _, err := memberRole(ctx, s.members, s.roles, actorID, project.ID); err != nil {
		if errors.Is(err, domain.ErrNotMember) || errors.Is(err, domain.ErrAuthRequired) {
			return nil, domain.ErrNotFound // Hide private projects from outsiders
		}
		return nil, err
	}
	return project, nil
}

// List returns projects the acting user is a member of.
func (s *ProjectService) List(ctx context.Context, actorID string) ([]domain.Project, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.projects.List(ctx, actorID)
}

// ListPublic returns all public projects.
func (s *ProjectService) ListPublic(ctx context.Context) ([]domain.Project, error) {
	return s.projects.ListPublic(ctx)
}

// Update mutates project settings. Requires admin rank.
// Renaming re-derives the slug, which must remain unique.
func (s *ProjectService) Update(ctx context.Context, actorID, projectID string, in driving.UpdateProjectInput) (*domain.Project, error) {
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankAdmin); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		slug := domain.Slugify(*in.Name)
		if slug == "" {
			return nil, domain.ErrInvalidInput
		}
		if slug != project.Slug {
			if existing, err := s.projects.GetBySlug(ctx, slug); err == nil && existing.ID != projectID {
				return nil, domain.ErrAlreadyExists
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("checking slug: %w", err)
			}
		}
		project.Name = strings.TrimSpace(*in.Name)
		project.Slug = slug
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.IsPublic != nil {
		project.IsPublic = *in.IsPublic
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Save(ctx, *project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}
	return project, nil
}

// SetLogo uploads a logo blob and records its path. Requires admin rank.
func (s *ProjectService) SetLogo(ctx context.Context, actorID, projectID, filename string, r io.Reader) (string, error) {
	if s.blobs == nil {
		return "", ErrBlobStoreUnavailable
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankAdmin); err != nil {
		return "", err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return "", err
	}

	blobPath := path.Join("logos", projectID, path.Base(filename))
	url, err := s.blobs.Put(ctx, blobPath, r)
	if err != nil {
		return "", fmt.Errorf("storing logo: %w", err)
	}

	project.LogoPath = blobPath
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Save(ctx, *project); err != nil {
		return "", fmt.Errorf("saving project: %w", err)
	}

	return url, nil
}
