package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCmd_Use(t *testing.T) {
	assert.Equal(t, "page", pageCmd.Use)
	assert.Equal(t, "create [project-slug]", pageCreateCmd.Use)
	assert.Equal(t, "get [project-slug] [path]", pageGetCmd.Use)
}

func TestPageCreate_RootPage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "create", "api-reference",
		"--title", "Getting Started")
	require.NoError(t, err)
	assert.Contains(t, out, "Created page: Getting Started (getting-started)")
}

func TestPageCreate_NestedPage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference",
		"--title", "Getting Started")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "create", "api-reference",
		"--title", "Setup", "--parent", "getting-started")
	require.NoError(t, err)
	assert.Contains(t, out, "Created page: Setup (getting-started/setup)")
}

func TestPageCreate_ContentFromFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)

	contentFile := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(contentFile, []byte(`{"blocks":[]}`), 0600))

	_, err = executeCommand(t, "page", "create", "api-reference",
		"--title", "Setup", "--content", contentFile)
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "get", "api-reference", "setup")
	require.NoError(t, err)
	assert.Contains(t, out, `{"blocks":[]}`)
}

func TestPageCreate_DuplicateSiblingTitle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Setup")
	require.NoError(t, err)

	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sibling page with this title already exists")
}

func TestPageGet_ContainerPage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Guides")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "get", "api-reference", "guides")
	require.NoError(t, err)
	assert.Contains(t, out, "Guides")
	assert.Contains(t, out, "(container page, no content)")
}

func TestPageUpdate_PublishExclusive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Guides")
	require.NoError(t, err)

	_, err = executeCommand(t, "page", "update", "api-reference", "guides",
		"--publish", "--unpublish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestPageMove_UnderNewParent(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Guides")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Setup")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "move", "api-reference", "setup",
		"--parent", "guides")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved page: Setup")

	_, err = executeCommand(t, "page", "get", "api-reference", "guides/setup")
	require.NoError(t, err)
}

func TestPageMove_CycleRejected(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Guides")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference",
		"--title", "Setup", "--parent", "guides")
	require.NoError(t, err)

	_, err = executeCommand(t, "page", "move", "api-reference", "guides",
		"--parent", "guides/setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move a page under its own descendant")
}

func TestPageDelete_RemovesDescendants(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Guides")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference",
		"--title", "Setup", "--parent", "guides")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "delete", "api-reference", "guides")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted page: Guides")

	_, err = executeCommand(t, "page", "get", "api-reference", "guides/setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page not found")
}

func TestPageTree_ShowsHierarchy(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Guides")
	require.NoError(t, err)
	_, err = executeCommand(t, "page", "create", "api-reference",
		"--title", "Setup", "--parent", "guides")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "tree", "api-reference")
	require.NoError(t, err)
	assert.Contains(t, out, "API Reference")
	assert.Contains(t, out, "Guides (guides)")
	assert.Contains(t, out, "Setup (setup)")
}

func TestPageTree_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)

	out, err := executeCommand(t, "page", "tree", "api-reference")
	require.NoError(t, err)
	assert.Contains(t, out, "No pages.")
}

func TestPageCreate_ViewerForbidden(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	signIn(t, "ada@example.com", "correct-horse")
	_, err := executeCommand(t, "project", "create", "API Reference")
	require.NoError(t, err)

	// Add a viewer and switch sessions to them.
	_, err = authService.SignUp(context.Background(), "bob@example.com", "correct-horse", "")
	require.NoError(t, err)
	_, err = executeCommand(t, "member", "add", "api-reference", "bob@example.com")
	require.NoError(t, err)

	session, err := authService.SignIn(context.Background(), "bob@example.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, storeSessionToken(session.Token))

	_, err = executeCommand(t, "page", "create", "api-reference", "--title", "Intruder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires the editor role")
}
