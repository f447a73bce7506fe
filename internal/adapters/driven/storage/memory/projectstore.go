package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure ProjectStore implements the interface.
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is an in-memory implementation of driven.ProjectStore.
// It shares membership state with a MemberStore so List can filter by
// the acting user.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
	members  *MemberStore
}

// NewProjectStore creates a new in-memory project store. The members
// parameter may be nil; List then returns all projects.
func NewProjectStore(members *MemberStore) *ProjectStore {
	return &ProjectStore{
		projects: make(map[string]domain.Project),
		members:  members,
	}
}

// Save stores or updates a project.
func (s *ProjectStore) Save(_ context.Context, project domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = project
	return nil
}

// Get retrieves a project by ID.
func (s *ProjectStore) Get(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &project, nil
}

// GetBySlug retrieves a project by its unique slug.
func (s *ProjectStore) GetBySlug(_ context.Context, slug string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, project := range s.projects {
		if project.Slug == slug {
			p := project
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns projects the given user is a member of.
// An empty userID lists all projects.
func (s *ProjectStore) List(ctx context.Context, userID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var projects []domain.Project //nolint:prealloc // size unknown until filtered
	for _, project := range s.projects {
		if userID != "" && s.members != nil {
			if _, err := s.members.Get(ctx, project.ID, userID); err != nil {
				continue
			}
		}
		projects = append(projects, project)
	}
	sortProjects(projects)
	return projects, nil
}

// ListPublic returns all public projects.
func (s *ProjectStore) ListPublic(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var projects []domain.Project //nolint:prealloc // size unknown until filtered
	for _, project := range s.projects {
		if project.IsPublic {
			projects = append(projects, project)
		}
	}
	sortProjects(projects)
	return projects, nil
}

func sortProjects(projects []domain.Project) {
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
}
