package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// memberFixture creates a project owned by an admin plus one extra user.
func memberFixture(t *testing.T) (*stores, *MembershipService, *domain.Project, *domain.UserProfile, *domain.UserProfile) {
	t.Helper()
	s := newStores()
	ctx := context.Background()

	admin := s.seedUser(t, "admin@example.com")
	other := s.seedUser(t, "other@example.com")

	project, err := newProjectService(s).Create(ctx, admin.ID, driving.CreateProjectInput{Name: "Team Docs"})
	require.NoError(t, err)

	return s, NewMembershipService(s.members, s.roles, s.users), project, admin, other
}

func TestMembershipService_AddMember(t *testing.T) {
	_, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	member, err := svc.AddMember(ctx, admin.ID, project.ID, other.ID, "editor")
	require.NoError(t, err)
	assert.Equal(t, other.ID, member.UserID)

	role, err := svc.Authority(ctx, other.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)
}

func TestMembershipService_AddMember_DefaultRole(t *testing.T) {
	_, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	// An empty role name falls back to the default role.
	_, err := svc.AddMember(ctx, admin.ID, project.ID, other.ID, "")
	require.NoError(t, err)

	role, err := svc.Authority(ctx, other.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "viewer", role.Name)
	assert.True(t, role.IsDefault)
}

func TestMembershipService_AddMember_RequiresAdmin(t *testing.T) {
	s, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	stranger := s.seedUser(t, "stranger@example.com")

	// Non-members cannot grant membership.
	_, err := svc.AddMember(ctx, other.ID, project.ID, stranger.ID, "viewer")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// Neither can editors.
	_, err = svc.AddMember(ctx, admin.ID, project.ID, other.ID, "editor")
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, other.ID, project.ID, stranger.ID, "viewer")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestMembershipService_AddMember_UnknownUser(t *testing.T) {
	_, svc, project, admin, _ := memberFixture(t)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, admin.ID, project.ID, "no-such-user", "viewer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMembershipService_AddMember_Duplicate(t *testing.T) {
	_, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, admin.ID, project.ID, other.ID, "viewer")
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, admin.ID, project.ID, other.ID, "editor")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestMembershipService_UpdateMemberRole(t *testing.T) {
	_, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, admin.ID, project.ID, other.ID, "viewer")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateMemberRole(ctx, admin.ID, project.ID, other.ID, "editor"))

	role, err := svc.Authority(ctx, other.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)
}

func TestMembershipService_UpdateMemberRole_Self(t *testing.T) {
	_, svc, project, admin, _ := memberFixture(t)
	ctx := context.Background()

	// Admins cannot change their own role. The self check fires before
	// the permission check.
	err := svc.UpdateMemberRole(ctx, admin.ID, project.ID, admin.ID, "viewer")
	assert.ErrorIs(t, err, domain.ErrSelfModification)

	role, err := svc.Authority(ctx, admin.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", role.Name)
}

func TestMembershipService_RemoveMember(t *testing.T) {
	_, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, admin.ID, project.ID, other.ID, "viewer")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, admin.ID, project.ID, other.ID))

	_, err = svc.Authority(ctx, other.ID, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestMembershipService_RemoveMember_Self(t *testing.T) {
	_, svc, project, admin, _ := memberFixture(t)
	ctx := context.Background()

	err := svc.RemoveMember(ctx, admin.ID, project.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrSelfModification)
}

func TestMembershipService_ListMembers(t *testing.T) {
	_, svc, project, admin, other := memberFixture(t)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, admin.ID, project.ID, other.ID, "viewer")
	require.NoError(t, err)

	infos, err := svc.ListMembers(ctx, admin.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	for _, info := range infos {
		assert.NotEmpty(t, info.User.Email)
		assert.NotEmpty(t, info.Role.Name)
	}

	// Any member rank may list, outsiders may not.
	_, err = svc.ListMembers(ctx, other.ID, project.ID)
	assert.NoError(t, err)
	_, err = svc.ListMembers(ctx, "no-such-user", project.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestMembershipService_Roles(t *testing.T) {
	_, svc, _, _, _ := memberFixture(t)

	roles, err := svc.Roles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)
	// Lowest rank first.
	assert.Equal(t, "viewer", roles[0].Name)
	assert.Equal(t, "admin", roles[2].Name)
}
