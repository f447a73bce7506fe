package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure VersionStore implements the interface.
var _ driven.VersionStore = (*VersionStore)(nil)

// VersionStore is an in-memory implementation of driven.VersionStore.
// It shares a PageStore so Restore can overwrite live pages.
type VersionStore struct {
	mu        sync.RWMutex
	versions  map[string]domain.ProjectVersion
	snapshots map[string][]domain.PageVersion
	pages     *PageStore
}

// NewVersionStore creates a new in-memory version store backed by the
// given page store.
func NewVersionStore(pages *PageStore) *VersionStore {
	return &VersionStore{
		versions:  make(map[string]domain.ProjectVersion),
		snapshots: make(map[string][]domain.PageVersion),
		pages:     pages,
	}
}

// CreateSnapshot stores a new draft version with its page snapshots.
func (s *VersionStore) CreateSnapshot(_ context.Context, version domain.ProjectVersion, snapshots []domain.PageVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.versions[version.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.versions[version.ID] = version
	s.snapshots[version.ID] = snapshots
	return nil
}

// Get retrieves a version by ID.
func (s *VersionStore) Get(_ context.Context, id string) (*domain.ProjectVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	version, ok := s.versions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &version, nil
}

// List returns a project's versions, newest first.
func (s *VersionStore) List(_ context.Context, projectID string, includeArchived bool) ([]domain.ProjectVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var versions []domain.ProjectVersion //nolint:prealloc // size unknown until filtered
	for _, v := range s.versions {
		if v.ProjectID != projectID {
			continue
		}
		if v.IsArchived && !includeArchived {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].CreatedAt.After(versions[j].CreatedAt) })
	return versions, nil
}

// GetCurrent retrieves the project's current version.
func (s *VersionStore) GetCurrent(_ context.Context, projectID string) (*domain.ProjectVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.versions {
		if v.ProjectID == projectID && v.IsCurrent {
			version := v
			return &version, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Publish transitions a draft to published, marks it current and
// clears the previous current flag.
func (s *VersionStore) Publish(_ context.Context, id string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	version, ok := s.versions[id]
	if !ok {
		return domain.ErrNotFound
	}

	s.clearCurrentLocked(version.ProjectID)

	version.IsDraft = false
	version.IsCurrent = true
	version.PublishedAt = publishedAt
	s.versions[id] = version
	return nil
}

// Archive marks a version archived.
func (s *VersionStore) Archive(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	version, ok := s.versions[id]
	if !ok {
		return domain.ErrNotFound
	}
	version.IsArchived = true
	s.versions[id] = version
	return nil
}

// Delete removes a version and its snapshots.
func (s *VersionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.versions, id)
	delete(s.snapshots, id)
	return nil
}

// Restore overwrites live page content from the version's snapshots
// and marks the version current and unarchived.
func (s *VersionStore) Restore(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	version, ok := s.versions[id]
	if !ok {
		s.mu.Unlock()
		return 0, domain.ErrNotFound
	}
	snapshots := s.snapshots[id]

	s.clearCurrentLocked(version.ProjectID)
	version.IsCurrent = true
	version.IsArchived = false
	s.versions[id] = version
	s.mu.Unlock()

	restored := 0
	for _, snap := range snapshots {
		page, err := s.pages.Get(ctx, snap.PageID)
		if err != nil {
			continue // Live page deleted since the snapshot was taken
		}
		page.Title = snap.Title
		page.Description = snap.Description
		page.Content = snap.Content
		page.UpdatedAt = time.Now().UTC()
		if err := s.pages.Save(ctx, *page); err != nil {
			return restored, err
		}
		restored++
	}
	return restored, nil
}

// ListSnapshots returns the page snapshots of a version.
func (s *VersionStore) ListSnapshots(_ context.Context, versionID string) ([]domain.PageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snaps := make([]domain.PageVersion, len(s.snapshots[versionID]))
	copy(snaps, s.snapshots[versionID])
	return snaps, nil
}

// clearCurrentLocked drops the current flag on every version of a
// project. Caller must hold the lock.
func (s *VersionStore) clearCurrentLocked(projectID string) {
	for vid, v := range s.versions {
		if v.ProjectID == projectID && v.IsCurrent {
			v.IsCurrent = false
			s.versions[vid] = v
		}
	}
}
