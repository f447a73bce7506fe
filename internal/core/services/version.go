package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// Ensure VersionService implements the interface.
var _ driving.VersionService = (*VersionService)(nil)

// VersionService drives the version lifecycle: draft snapshots,
// publishing, archiving, deletion and restore.
type VersionService struct {
	versions driven.VersionStore
	pages    driven.PageStore
	members  driven.MemberStore
	roles    driven.RoleStore
}

// NewVersionService creates a new version service.
func NewVersionService(
	versions driven.VersionStore,
	pages driven.PageStore,
	members driven.MemberStore,
	roles driven.RoleStore,
) *VersionService {
	return &VersionService{
		versions: versions,
		pages:    pages,
		members:  members,
		roles:    roles,
	}
}

// Create snapshots every live page into a new draft version.
func (s *VersionService) Create(ctx context.Context, actorID, projectID string, in driving.CreateVersionInput) (*domain.ProjectVersion, error) {
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankEditor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	version := domain.ProjectVersion{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		VersionNumber: in.VersionNumber,
		Name:          in.Name,
		Notes:         in.Notes,
		IsDraft:       true,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
	if err := version.Validate(); err != nil {
		return nil, err
	}

	pages, err := s.pages.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	snapshots := make([]domain.PageVersion, 0, len(pages))
	for _, p := range pages {
		snapshots = append(snapshots, domain.PageVersion{
			ID:          uuid.NewString(),
			VersionID:   version.ID,
			PageID:      p.ID,
			Title:       p.Title,
			Description: p.Description,
			Content:     p.Content,
			CreatedAt:   now,
		})
	}
	version.PageCount = len(snapshots)

	if err := s.versions.CreateSnapshot(ctx, version, snapshots); err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}

	logger.Info("version created: project=%s number=%s pages=%d", projectID, version.VersionNumber, version.PageCount)
	return &version, nil
}

// Get retrieves a version. Requires membership of any rank.
func (s *VersionService) Get(ctx context.Context, actorID, versionID string) (*domain.ProjectVersion, error) {
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, actorID, version.ProjectID); err != nil {
		return nil, err
	}
	return version, nil
}

// List returns a project's versions, newest first.
func (s *VersionService) List(ctx context.Context, actorID, projectID string, includeArchived bool) ([]domain.ProjectVersion, error) {
	if err := s.requireMembership(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.versions.List(ctx, projectID, includeArchived)
}

// Publish transitions a draft to published and makes it current,
// clearing the previous current version in the same transaction.
func (s *VersionService) Publish(ctx context.Context, actorID, versionID string) (*domain.ProjectVersion, error) {
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, version.ProjectID, domain.RankEditor); err != nil {
		return nil, err
	}
	if err := version.CanPublish(); err != nil {
		return nil, err
	}

	if err := s.versions.Publish(ctx, versionID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("publishing version: %w", err)
	}

	logger.Info("version published: %s (%s)", version.VersionNumber, versionID)
	return s.versions.Get(ctx, versionID)
}

// Archive retires a non-current version.
func (s *VersionService) Archive(ctx context.Context, actorID, versionID string) error {
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, version.ProjectID, domain.RankEditor); err != nil {
		return err
	}
	if err := version.CanArchive(); err != nil {
		return err
	}
	return s.versions.Archive(ctx, versionID)
}

// Delete removes a draft, non-current version and its snapshots.
func (s *VersionService) Delete(ctx context.Context, actorID, versionID string) error {
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, version.ProjectID, domain.RankEditor); err != nil {
		return err
	}
	if err := version.CanDelete(); err != nil {
		return err
	}
	return s.versions.Delete(ctx, versionID)
}

// Restore overwrites live pages from the version's snapshots and marks
// it current. The store applies the whole restore in one transaction,
// so a failure leaves the live pages untouched.
func (s *VersionService) Restore(ctx context.Context, actorID, versionID string) (int, error) {
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return 0, err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, version.ProjectID, domain.RankEditor); err != nil {
		return 0, err
	}
	if err := version.CanRestore(); err != nil {
		return 0, err
	}

	restored, err := s.versions.Restore(ctx, versionID)
	if err != nil {
		return 0, fmt.Errorf("restoring version: %w", err)
	}

	logger.Info("version restored: %s, %d pages", version.VersionNumber, restored)
	return restored, nil
}

// Snapshots returns a version's page snapshots.
func (s *VersionService) Snapshots(ctx context.Context, actorID, versionID string) ([]domain.PageVersion, error) {
	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, actorID, version.ProjectID); err != nil {
		return nil, err
	}
	return s.versions.ListSnapshots(ctx, versionID)
}

// SuggestNext proposes the next version number based on the most
// recently created version. Purely advisory.
func (s *VersionService) SuggestNext(ctx context.Context, projectID string) (string, error) {
	versions, err := s.versions.List(ctx, projectID, true)
	if err != nil {
		return "", fmt.Errorf("listing versions: %w", err)
	}
	if len(versions) == 0 {
		return domain.SuggestNextVersion(""), nil
	}
	return domain.SuggestNextVersion(versions[0].VersionNumber), nil
}

// requireMembership gates reads on membership of any rank.
func (s *VersionService) requireMembership(ctx context.Context, actorID, projectID string) error {
	if _, err := memberRole(ctx, s.members, s.roles, actorID, projectID); err != nil {
		if errors.Is(err, domain.ErrNotMember) {
			return domain.ErrPermissionDenied
		}
		return err
	}
	return nil
}
