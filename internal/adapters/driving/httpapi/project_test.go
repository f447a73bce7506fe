package httpapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectEndpoints_CreateAndGet(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")

	project := api.createProject(token, "API Docs", true)
	assert.Equal(t, "api-docs", project.Slug)
	assert.True(t, project.IsPublic)

	rec := api.do(http.MethodGet, "/api/projects/api-docs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got projectResponse
	api.decode(rec, &got)
	assert.Equal(t, project.ID, got.ID)
	assert.Equal(t, "API Docs", got.Name)
}

func TestProjectEndpoints_CreateRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/projects", "", payload{"name": "API Docs"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProjectEndpoints_DuplicateSlug(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	rec := api.do(http.MethodPost, "/api/projects", token, payload{"name": "API Docs"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProjectEndpoints_PublicGetAnonymous(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "Public Docs", true)
	api.createProject(token, "Private Docs", false)

	rec := api.do(http.MethodGet, "/api/projects/public-docs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Private projects read as missing to outsiders.
	rec = api.do(http.MethodGet, "/api/projects/private-docs", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectEndpoints_ListScopes(t *testing.T) {
	api := newTestAPI(t)
	ada := api.signUpAndLogin("ada@example.com", "correct-horse")
	bob := api.signUpAndLogin("bob@example.com", "correct-horse")
	api.createProject(ada, "Public Docs", true)
	api.createProject(ada, "Private Docs", false)

	// Members see their own projects.
	rec := api.do(http.MethodGet, "/api/projects", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []projectResponse
	api.decode(rec, &mine)
	assert.Len(t, mine, 2)

	rec = api.do(http.MethodGet, "/api/projects", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var theirs []projectResponse
	api.decode(rec, &theirs)
	assert.Empty(t, theirs)

	// ?public=true works without a session.
	rec = api.do(http.MethodGet, "/api/projects?public=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public []projectResponse
	api.decode(rec, &public)
	require.Len(t, public, 1)
	assert.Equal(t, "public-docs", public[0].Slug)
}

func TestProjectEndpoints_Update(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	rec := api.do(http.MethodPatch, "/api/projects/api-docs", token, payload{
		"description": "Reference documentation",
		"is_public":   true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated projectResponse
	api.decode(rec, &updated)
	assert.Equal(t, "Reference documentation", updated.Description)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, "API Docs", updated.Name)
}

func TestProjectEndpoints_UpdateRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	ada := api.signUpAndLogin("ada@example.com", "correct-horse")
	bob := api.signUpAndLogin("bob@example.com", "correct-horse")
	api.createProject(ada, "API Docs", true)

	rec := api.do(http.MethodPatch, "/api/projects/api-docs", bob, payload{
		"description": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProjectEndpoints_SetLogo(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", true)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects/api-docs/logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		URL string `json:"url"`
	}
	api.decode(rec, &resp)
	assert.NotEmpty(t, resp.URL)
}

func TestMemberEndpoints_AddListRemove(t *testing.T) {
	api := newTestAPI(t)
	ada := api.signUpAndLogin("ada@example.com", "correct-horse")
	bob := api.signUpAndLogin("bob@example.com", "correct-horse")
	api.createProject(ada, "API Docs", false)

	rec := api.do(http.MethodPost, "/api/projects/api-docs/members", ada, payload{
		"email": "bob@example.com", "role": "editor",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Bob can now see the private project.
	rec = api.do(http.MethodGet, "/api/projects/api-docs", bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/projects/api-docs/members", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	api.decode(rec, &members)
	require.Len(t, members, 2)

	byEmail := map[string]string{}
	for _, m := range members {
		byEmail[m.Email] = m.Role
	}
	assert.Equal(t, "admin", byEmail["ada@example.com"])
	assert.Equal(t, "editor", byEmail["bob@example.com"])

	rec = api.do(http.MethodDelete, "/api/projects/api-docs/members/bob@example.com", ada, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/projects/api-docs", bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMemberEndpoints_SetRole(t *testing.T) {
	api := newTestAPI(t)
	ada := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.signUpAndLogin("bob@example.com", "correct-horse")
	api.createProject(ada, "API Docs", false)

	rec := api.do(http.MethodPost, "/api/projects/api-docs/members", ada, payload{
		"email": "bob@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPatch, "/api/projects/api-docs/members/bob@example.com", ada, payload{
		"role": "admin",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestMemberEndpoints_SelfModificationRejected(t *testing.T) {
	api := newTestAPI(t)
	ada := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(ada, "API Docs", false)

	rec := api.do(http.MethodDelete, "/api/projects/api-docs/members/ada@example.com", ada, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMemberEndpoints_UnknownEmail(t *testing.T) {
	api := newTestAPI(t)
	ada := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(ada, "API Docs", false)

	rec := api.do(http.MethodPost, "/api/projects/api-docs/members", ada, payload{
		"email": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRolesEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/roles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []struct {
		Name      string `json:"name"`
		Rank      int    `json:"rank"`
		IsDefault bool   `json:"is_default"`
	}
	api.decode(rec, &roles)
	require.Len(t, roles, 3)

	byName := map[string]int{}
	defaults := 0
	for _, r := range roles {
		byName[r.Name] = r.Rank
		if r.IsDefault {
			defaults++
		}
	}
	assert.Less(t, byName["viewer"], byName["editor"])
	assert.Less(t, byName["editor"], byName["admin"])
	assert.Equal(t, 1, defaults)
}
