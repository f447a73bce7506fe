// Command docvault is the entry point for the DocVault CLI and servers.
// It wires the SQLite store, config file, blob store, and core services
// into the driving adapters.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/blob/local"
	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/config/file"
	"github.com/docvault-labs/docvault-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docvault-labs/docvault-cli/internal/adapters/driving/cli"
	"github.com/docvault-labs/docvault-cli/internal/core/services"
)

// Build metadata, set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cli.SetVersion(fmt.Sprintf("%s (%s)", version, commit))
	cli.SetInitServices(initServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices builds the full service graph. It runs once, lazily,
// before the first command that needs services.
func initServices(dataDir string) error {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	blobDir := ""
	if dataDir != "" {
		blobDir = filepath.Join(dataDir, "blobs")
	}
	blobStore, err := local.NewBlobStore(blobDir, "/blobs")
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	users := store.UserStore()
	sessions := store.SessionStore()
	resets := store.ResetStore()
	roles := store.RoleStore()
	members := store.MemberStore()
	projects := store.ProjectStore()
	pages := store.PageStore()
	versions := store.VersionStore()

	cli.SetServices(cli.Services{
		Auth:       services.NewAuthService(users, sessions, resets),
		Project:    services.NewProjectService(projects, members, roles, blobStore),
		Membership: services.NewMembershipService(members, roles, users),
		Page:       services.NewPageService(pages, projects, members, roles),
		Version:    services.NewVersionService(versions, pages, members, roles),
		Search:     services.NewSearchService(store.SearchEngine()),
		Config:     configStore,
	})
	cli.SetBlobDir(blobStore.Dir())

	return nil
}
