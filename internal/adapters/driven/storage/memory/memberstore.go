package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure MemberStore implements the interface.
var _ driven.MemberStore = (*MemberStore)(nil)

type memberKey struct {
	projectID string
	userID    string
}

// MemberStore is an in-memory implementation of driven.MemberStore.
type MemberStore struct {
	mu      sync.RWMutex
	members map[memberKey]domain.ProjectMember
}

// NewMemberStore creates a new in-memory member store.
func NewMemberStore() *MemberStore {
	return &MemberStore{members: make(map[memberKey]domain.ProjectMember)}
}

// Add creates a membership. Fails when the pair already has one.
func (s *MemberStore) Add(_ context.Context, member domain.ProjectMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{member.ProjectID, member.UserID}
	if _, exists := s.members[key]; exists {
		return domain.ErrAlreadyExists
	}
	s.members[key] = member
	return nil
}

// Get retrieves the membership for a (project, user) pair.
func (s *MemberStore) Get(_ context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[memberKey{projectID, userID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &member, nil
}

// UpdateRole changes the role of an existing membership.
func (s *MemberStore) UpdateRole(_ context.Context, projectID, userID, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{projectID, userID}
	member, ok := s.members[key]
	if !ok {
		return domain.ErrNotFound
	}
	member.RoleID = roleID
	member.UpdatedAt = time.Now().UTC()
	s.members[key] = member
	return nil
}

// Remove deletes a membership.
func (s *MemberStore) Remove(_ context.Context, projectID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, memberKey{projectID, userID})
	return nil
}

// List returns all memberships for a project.
func (s *MemberStore) List(_ context.Context, projectID string) ([]domain.ProjectMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []domain.ProjectMember //nolint:prealloc // size unknown until filtered
	for _, member := range s.members {
		if member.ProjectID == projectID {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	return members, nil
}
