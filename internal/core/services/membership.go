package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// Ensure MembershipService implements the interface.
var _ driving.MembershipService = (*MembershipService)(nil)

// MembershipService manages project membership and role authority.
type MembershipService struct {
	members driven.MemberStore
	roles   driven.RoleStore
	users   driven.UserStore
}

// NewMembershipService creates a new membership service.
func NewMembershipService(members driven.MemberStore, roles driven.RoleStore, users driven.UserStore) *MembershipService {
	return &MembershipService{
		members: members,
		roles:   roles,
		users:   users,
	}
}

// AddMember grants a user a role on a project. An empty roleName
// falls back to the default role. Requires admin rank.
func (s *MembershipService) AddMember(ctx context.Context, actorID, projectID, userID, roleName string) (*domain.ProjectMember, error) {
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankAdmin); err != nil {
		return nil, err
	}

	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	role, err := s.resolveRole(ctx, roleName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		RoleID:    role.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.members.Add(ctx, member); err != nil {
		return nil, err
	}

	logger.Info("member added: user=%s project=%s role=%s", userID, projectID, role.Name)
	return &member, nil
}

// UpdateMemberRole changes a member's role. The acting user may never
// change their own role, regardless of permission level.
func (s *MembershipService) UpdateMemberRole(ctx context.Context, actorID, projectID, userID, roleName string) error {
	if actorID == userID {
		return domain.ErrSelfModification
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankAdmin); err != nil {
		return err
	}

	role, err := s.resolveRole(ctx, roleName)
	if err != nil {
		return err
	}

	if _, err := s.members.Get(ctx, projectID, userID); err != nil {
		return err
	}
	return s.members.UpdateRole(ctx, projectID, userID, role.ID)
}

// RemoveMember deletes a membership. The acting user may never remove
// themselves, regardless of permission level.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, projectID, userID string) error {
	if actorID == userID {
		return domain.ErrSelfModification
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankAdmin); err != nil {
		return err
	}

	if _, err := s.members.Get(ctx, projectID, userID); err != nil {
		return err
	}
	return s.members.Remove(ctx, projectID, userID)
}

// ListMembers returns a project's membership with profile and role
// details. Requires membership of any rank.
func (s *MembershipService) ListMembers(ctx context.Context, actorID, projectID string) ([]driving.MemberInfo, error) {
	if _, err := memberRole(ctx, s.members, s.roles, actorID, projectID); err != nil {
		if errors.Is(err, domain.ErrNotMember) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, err
	}

	members, err := s.members.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	infos := make([]driving.MemberInfo, 0, len(members))
	for _, m := range members {
		info := driving.MemberInfo{Member: m}
		if user, err := s.users.Get(ctx, m.UserID); err == nil {
			info.User = *user
		}
		if role, err := s.roles.Get(ctx, m.RoleID); err == nil {
			info.Role = *role
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Roles returns the runtime-loaded role enumeration.
func (s *MembershipService) Roles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// FindUser resolves an email to a profile so membership can be
// granted by email. Requires an authenticated caller.
func (s *MembershipService) FindUser(ctx context.Context, actorID, email string) (*domain.UserProfile, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.users.GetByEmail(ctx, email)
}

// Authority resolves the role the acting user holds on a project.
func (s *MembershipService) Authority(ctx context.Context, actorID, projectID string) (*domain.Role, error) {
	return memberRole(ctx, s.members, s.roles, actorID, projectID)
}

// resolveRole maps a role name to a stored role, falling back to the
// default role when the name is empty.
func (s *MembershipService) resolveRole(ctx context.Context, roleName string) (*domain.Role, error) {
	if roleName != "" {
		return s.roles.GetByName(ctx, roleName)
	}

	all, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roles: %w", err)
	}
	role, ok := domain.DefaultRole(all)
	if !ok {
		return nil, fmt.Errorf("no roles configured: %w", domain.ErrInvalidInput)
	}
	return &role, nil
}
