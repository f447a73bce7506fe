package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure RoleStore implements the interface.
var _ driven.RoleStore = (*RoleStore)(nil)

// RoleStore is an in-memory implementation of driven.RoleStore.
type RoleStore struct {
	mu    sync.RWMutex
	roles map[string]domain.Role
}

// NewRoleStore creates a new in-memory role store.
func NewRoleStore() *RoleStore {
	return &RoleStore{roles: make(map[string]domain.Role)}
}

// NewSeededRoleStore creates a role store pre-loaded with the standard
// viewer/editor/admin set, viewer flagged as default. Convenient for tests.
func NewSeededRoleStore() *RoleStore {
	s := NewRoleStore()
	ctx := context.Background()
	_ = s.Save(ctx, domain.Role{ID: "role-viewer", Name: "viewer", Rank: domain.RankViewer, IsDefault: true})
	_ = s.Save(ctx, domain.Role{ID: "role-editor", Name: "editor", Rank: domain.RankEditor})
	_ = s.Save(ctx, domain.Role{ID: "role-admin", Name: "admin", Rank: domain.RankAdmin})
	return s
}

// List returns all roles, lowest rank first.
func (s *RoleStore) List(_ context.Context) ([]domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]domain.Role, 0, len(s.roles))
	for _, r := range s.roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Rank < roles[j].Rank })
	return roles, nil
}

// Get retrieves a role by ID.
func (s *RoleStore) Get(_ context.Context, id string) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &role, nil
}

// GetByName retrieves a role by name.
func (s *RoleStore) GetByName(_ context.Context, name string) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, role := range s.roles {
		if role.Name == name {
			r := role
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Save stores or updates a role.
func (s *RoleStore) Save(_ context.Context, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[role.ID] = role
	return nil
}
