package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/storage/memory"
	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/services"
)

// testAPI bundles a server backed by in-memory stores and real services.
type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	resets := memory.NewResetStore()
	roles := memory.NewSeededRoleStore()
	members := memory.NewMemberStore()
	projects := memory.NewProjectStore(members)
	pages := memory.NewPageStore()
	versions := memory.NewVersionStore(pages)
	engine := memory.NewSearchEngine(pages, projects)

	ports := &Ports{
		Auth:       services.NewAuthService(users, sessions, resets),
		Project:    services.NewProjectService(projects, members, roles, newMemBlobStore()),
		Membership: services.NewMembershipService(members, roles, users),
		Page:       services.NewPageService(pages, projects, members, roles),
		Version:    services.NewVersionService(versions, pages, members, roles),
		Search:     services.NewSearchService(engine),
	}

	server, err := NewServer(ports, Options{})
	require.NoError(t, err)

	return &testAPI{t: t, handler: server.Handler()}
}

// do performs a JSON request against the server. A non-empty token is
// sent as a bearer credential.
func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into out.
func (a *testAPI) decode(rec *httptest.ResponseRecorder, out any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out))
}

// signUpAndLogin creates an account and returns a session token.
func (a *testAPI) signUpAndLogin(email, password string) string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/auth/signup", "", payload{
		"email": email, "password": password,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/auth/login", "", payload{
		"email": email, "password": password,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	a.decode(rec, &session)
	require.NotEmpty(a.t, session.Token)
	return session.Token
}

// createProject creates a project and returns its response payload.
func (a *testAPI) createProject(token, name string, public bool) projectResponse {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/projects", token, payload{
		"name": name, "is_public": public,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var project projectResponse
	a.decode(rec, &project)
	return project
}

// createPage creates a page under a project and returns its payload.
func (a *testAPI) createPage(token, slug string, body payload) pageResponse {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/projects/"+slug+"/pages", token, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var page pageResponse
	a.decode(rec, &page)
	return page
}

// payload is a shorthand for JSON request bodies.
type payload = map[string]any

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
