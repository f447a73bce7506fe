package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/storage/memory"
	"github.com/docvault-labs/docvault-cli/internal/core/services"
)

// setupTestServices wires the commands to in-memory stores and real
// services, returning a cleanup that restores the previous globals.
func setupTestServices() func() {
	prevAuth := authService
	prevProject := projectService
	prevMembership := membershipService
	prevPage := pageService
	prevVersion := versionService
	prevSearch := searchService
	prevConfig := configStore

	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	resets := memory.NewResetStore()
	roles := memory.NewSeededRoleStore()
	members := memory.NewMemberStore()
	projects := memory.NewProjectStore(members)
	pages := memory.NewPageStore()
	versions := memory.NewVersionStore(pages)

	// Flag variables persist between executions; start each test
	// from the defaults.
	authEmail, authPassword, authName, authResetToken = "", "", "", ""
	projectDescription, projectNewName = "", ""
	projectPublic, projectPrivate, projectJSON = false, false, false
	searchLimit, searchOffset, searchProject, searchJSON = 20, 0, "", false
	memberRole = ""
	pageTitle, pageParent, pageDescription, pageContentFile, pageIcon = "", "", "", "", ""
	pagePublish, pageUnpublish, pageMoveRoot = false, false, false
	pageMoveParent, pageMoveIndex = "", 0
	versionNumber, versionName, versionNotes = "", "", ""
	versionAll = false

	SetServices(Services{
		Auth:       services.NewAuthService(users, sessions, resets),
		Project:    services.NewProjectService(projects, members, roles, nil),
		Membership: services.NewMembershipService(members, roles, users),
		Page:       services.NewPageService(pages, projects, members, roles),
		Version:    services.NewVersionService(versions, pages, members, roles),
		Search:     services.NewSearchService(memory.NewSearchEngine(pages, projects)),
		Config:     memory.NewConfigStore(),
	})

	return func() {
		SetServices(Services{
			Auth:       prevAuth,
			Project:    prevProject,
			Membership: prevMembership,
			Page:       prevPage,
			Version:    prevVersion,
			Search:     prevSearch,
			Config:     prevConfig,
		})
	}
}

// executeCommand runs the root command with the given args and
// returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// signIn creates an account and stores its session, the way the auth
// commands would.
func signIn(t *testing.T, email, password string) {
	t.Helper()

	ctx := context.Background()
	_, err := authService.SignUp(ctx, email, password, "")
	require.NoError(t, err)
	session, err := authService.SignIn(ctx, email, password)
	require.NoError(t, err)
	require.NoError(t, storeSessionToken(session.Token))
}
