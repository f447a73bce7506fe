package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testAPI) createVersion(token, slug string, body payload) versionResponse {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/projects/"+slug+"/versions", token, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var version versionResponse
	a.decode(rec, &version)
	return version
}

func TestVersionEndpoints_CreateSnapshotsPages(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)
	api.createPage(token, "api-docs", payload{"title": "Guides", "content": "body"})
	api.createPage(token, "api-docs", payload{"title": "Reference"})

	version := api.createVersion(token, "api-docs", payload{
		"version_number": "1.0.0", "name": "First release",
	})
	assert.Equal(t, "1.0.0", version.VersionNumber)
	assert.True(t, version.IsDraft)
	assert.False(t, version.IsCurrent)
	assert.Equal(t, 2, version.PageCount)
	assert.Nil(t, version.PublishedAt)

	rec := api.do(http.MethodGet, "/api/versions/"+version.ID+"/snapshots", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshots []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	api.decode(rec, &snapshots)
	require.Len(t, snapshots, 2)
}

func TestVersionEndpoints_CreateWithoutNumberSuggests(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	version := api.createVersion(token, "api-docs", payload{})
	assert.Equal(t, "1.0.0", version.VersionNumber)
}

func TestVersionEndpoints_Suggest(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)
	api.createVersion(token, "api-docs", payload{"version_number": "1.2.3"})

	rec := api.do(http.MethodGet, "/api/projects/api-docs/versions/suggest", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		VersionNumber string `json:"version_number"`
	}
	api.decode(rec, &resp)
	assert.Equal(t, "1.3.0", resp.VersionNumber)
}

func TestVersionEndpoints_PublishMakesCurrent(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	first := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	second := api.createVersion(token, "api-docs", payload{"version_number": "1.1.0"})

	rec := api.do(http.MethodPost, "/api/versions/"+first.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var published versionResponse
	api.decode(rec, &published)
	assert.False(t, published.IsDraft)
	assert.True(t, published.IsCurrent)
	require.NotNil(t, published.PublishedAt)
	assert.False(t, published.PublishedAt.IsZero())

	// Publishing another version displaces the current one.
	rec = api.do(http.MethodPost, "/api/versions/"+second.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/versions/"+first.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var displaced versionResponse
	api.decode(rec, &displaced)
	assert.False(t, displaced.IsCurrent)
}

func TestVersionEndpoints_PublishTwiceRejected(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	version := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	rec := api.do(http.MethodPost, "/api/versions/"+version.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/versions/"+version.ID+"/publish", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVersionEndpoints_CurrentCannotBeArchivedOrDeleted(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	version := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	rec := api.do(http.MethodPost, "/api/versions/"+version.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/versions/"+version.ID+"/archive", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodDelete, "/api/versions/"+version.ID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVersionEndpoints_DeleteDraft(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	version := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	rec := api.do(http.MethodDelete, "/api/versions/"+version.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/versions/"+version.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVersionEndpoints_ListExcludesArchivedByDefault(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	keep := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	retire := api.createVersion(token, "api-docs", payload{"version_number": "0.9.0"})
	rec := api.do(http.MethodPost, "/api/versions/"+retire.ID+"/archive", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/projects/api-docs/versions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var versions []versionResponse
	api.decode(rec, &versions)
	require.Len(t, versions, 1)
	assert.Equal(t, keep.ID, versions[0].ID)

	rec = api.do(http.MethodGet, "/api/projects/api-docs/versions?all=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	api.decode(rec, &versions)
	assert.Len(t, versions, 2)
}

func TestVersionEndpoints_RestoreDraftRejected(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	draft := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	rec := api.do(http.MethodPost, "/api/versions/"+draft.ID+"/restore", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "still a draft")
}

func TestVersionEndpoints_Restore(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")
	api.createProject(token, "API Docs", false)

	page := api.createPage(token, "api-docs", payload{"title": "Guides", "content": "original"})
	version := api.createVersion(token, "api-docs", payload{"version_number": "1.0.0"})
	rec := api.do(http.MethodPost, "/api/versions/"+version.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Drift the live page, then restore from a new draft of the same state.
	rec = api.do(http.MethodPatch, "/api/pages/"+page.ID, token, payload{"content": "drifted"})
	require.Equal(t, http.StatusOK, rec.Code)

	second := api.createVersion(token, "api-docs", payload{"version_number": "1.1.0"})
	rec = api.do(http.MethodPost, "/api/versions/"+second.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/versions/"+version.ID+"/restore", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var restored struct {
		PagesRestored int `json:"pages_restored"`
	}
	api.decode(rec, &restored)
	assert.Equal(t, 1, restored.PagesRestored)

	rec = api.do(http.MethodGet, "/api/projects/api-docs/pages/guides", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got pageResponse
	api.decode(rec, &got)
	assert.Equal(t, "original", got.Content)
}
