package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// memberRole resolves the role a user holds on a project.
// Returns domain.ErrNotMember when no membership exists.
func memberRole(
	ctx context.Context,
	members driven.MemberStore,
	roles driven.RoleStore,
	userID, projectID string,
) (*domain.Role, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	member, err := members.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotMember
		}
		return nil, fmt.Errorf("resolving membership: %w", err)
	}

	role, err := roles.Get(ctx, member.RoleID)
	if err != nil {
		return nil, fmt.Errorf("resolving role: %w", err)
	}
	return role, nil
}

// requireRank gates a mutation on a minimum role rank.
// Non-members and under-ranked members both get ErrPermissionDenied.
func requireRank(
	ctx context.Context,
	members driven.MemberStore,
	roles driven.RoleStore,
	userID, projectID string,
	minRank int,
) (*domain.Role, error) {
	role, err := memberRole(ctx, members, roles, userID, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotMember) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, err
	}
	if role.Rank < minRank {
		return nil, domain.ErrPermissionDenied
	}
	return role, nil
}
