package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/storage/memory"
	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// stores bundles the in-memory adapters most service tests need.
type stores struct {
	users    *memory.UserStore
	sessions *memory.SessionStore
	resets   *memory.ResetStore
	roles    *memory.RoleStore
	members  *memory.MemberStore
	projects *memory.ProjectStore
	pages    *memory.PageStore
	versions *memory.VersionStore
}

func newStores() *stores {
	members := memory.NewMemberStore()
	pages := memory.NewPageStore()
	return &stores{
		users:    memory.NewUserStore(),
		sessions: memory.NewSessionStore(),
		resets:   memory.NewResetStore(),
		roles:    memory.NewSeededRoleStore(),
		members:  members,
		projects: memory.NewProjectStore(members),
		pages:    pages,
		versions: memory.NewVersionStore(pages),
	}
}

// seedUser stores a profile directly, bypassing sign-up.
func (s *stores) seedUser(t *testing.T, email string) *domain.UserProfile {
	t.Helper()
	now := time.Now().UTC()
	user := domain.UserProfile{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.users.Save(context.Background(), user))
	return &user
}

// seedMember grants a user a seeded role ("viewer", "editor", "admin")
// on a project directly, bypassing the membership service.
func (s *stores) seedMember(t *testing.T, projectID, userID, roleName string) {
	t.Helper()
	role, err := s.roles.GetByName(context.Background(), roleName)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, s.members.Add(context.Background(), domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		RoleID:    role.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

// memBlobStore is a map-backed blob store for logo upload tests.
type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (b *memBlobStore) Put(_ context.Context, path string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[path] = data
	return b.URL(path), nil
}

func (b *memBlobStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.blobs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *memBlobStore) URL(path string) string {
	return "/blobs/" + path
}
