package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

func newProjectService(s *stores) *ProjectService {
	return NewProjectService(s.projects, s.members, s.roles, nil)
}

func TestProjectService_Create(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	project, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{
		Name:        "  My Project  ",
		Description: "Docs for my project",
	})
	require.NoError(t, err)
	assert.Equal(t, "My Project", project.Name)
	assert.Equal(t, "my-project", project.Slug)
	assert.Equal(t, owner.ID, project.CreatedBy)
	assert.False(t, project.IsPublic)

	// The creator holds the highest-rank role.
	member, err := s.members.Get(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	role, err := s.roles.Get(ctx, member.RoleID)
	require.NoError(t, err)
	assert.Equal(t, domain.RankAdmin, role.Rank)
}

func TestProjectService_Create_DuplicateSlug(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	_, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My Project"})
	require.NoError(t, err)

	// Different spelling, same slug.
	_, err = svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My   Project!"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestProjectService_Create_InvalidInput(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	_, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "!!!"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, "", driving.CreateProjectInput{Name: "My Project"})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProjectService_Get_Visibility(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	outsider := s.seedUser(t, "outsider@example.com")

	private, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Private Docs"})
	require.NoError(t, err)
	public, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Public Docs", IsPublic: true})
	require.NoError(t, err)

	// Members see their private projects.
	got, err := svc.Get(ctx, owner.ID, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	// Private projects are hidden from outsiders and anonymous callers.
	_, err = svc.Get(ctx, outsider.ID, private.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(ctx, "", private.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Public projects are open to everyone.
	got, err = svc.Get(ctx, "", public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)
}

func TestProjectService_GetBySlug(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	project, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My Project"})
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, owner.ID, "my-project")
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	_, err = svc.GetBySlug(ctx, owner.ID, "no-such-slug")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_List(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	alice := s.seedUser(t, "alice@example.com")
	bob := s.seedUser(t, "bob@example.com")

	_, err := svc.Create(ctx, alice.ID, driving.CreateProjectInput{Name: "Alice Docs"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, driving.CreateProjectInput{Name: "Bob Docs"})
	require.NoError(t, err)

	projects, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Alice Docs", projects[0].Name)

	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProjectService_ListPublic(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	_, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Private Docs"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Public Docs", IsPublic: true})
	require.NoError(t, err)

	projects, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Public Docs", projects[0].Name)
}

func TestProjectService_Update(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	project, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My Project"})
	require.NoError(t, err)

	name := "Renamed Project"
	public := true
	updated, err := svc.Update(ctx, owner.ID, project.ID, driving.UpdateProjectInput{
		Name:     &name,
		IsPublic: &public,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Project", updated.Name)
	assert.Equal(t, "renamed-project", updated.Slug)
	assert.True(t, updated.IsPublic)

	// The old slug no longer resolves.
	_, err = svc.GetBySlug(ctx, owner.ID, "my-project")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_Update_RequiresAdmin(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	editor := s.seedUser(t, "editor@example.com")
	project, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My Project"})
	require.NoError(t, err)
	s.seedMember(t, project.ID, editor.ID, "editor")

	name := "Hijacked"
	_, err = svc.Update(ctx, editor.ID, project.ID, driving.UpdateProjectInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestProjectService_Update_SlugCollision(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	_, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "First Project"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "Second Project"})
	require.NoError(t, err)

	name := "First Project"
	_, err = svc.Update(ctx, owner.ID, second.ID, driving.UpdateProjectInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestProjectService_SetLogo(t *testing.T) {
	s := newStores()
	blobs := newMemBlobStore()
	svc := NewProjectService(s.projects, s.members, s.roles, blobs)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	project, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My Project"})
	require.NoError(t, err)

	url, err := svc.SetLogo(ctx, owner.ID, project.ID, "logo.png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.Contains(t, url, "logos/"+project.ID+"/logo.png")

	got, err := svc.Get(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "logos/"+project.ID+"/logo.png", got.LogoPath)
}

func TestProjectService_SetLogo_NoBlobStore(t *testing.T) {
	s := newStores()
	svc := newProjectService(s)
	ctx := context.Background()

	owner := s.seedUser(t, "owner@example.com")
	project, err := svc.Create(ctx, owner.ID, driving.CreateProjectInput{Name: "My Project"})
	require.NoError(t, err)

	_, err = svc.SetLogo(ctx, owner.ID, project.ID, "logo.png", strings.NewReader("png bytes"))
	assert.ErrorIs(t, err, ErrBlobStoreUnavailable)
}
