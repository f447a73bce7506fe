// Package cli implements the command-line driving adapter. Commands
// talk to core services through the driving ports only; the
// composition root wires concrete implementations via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
	"github.com/docvault-labs/docvault-cli/internal/logger"
)

// version is the build version, injected by the composition root.
var version = "dev"

// Services the commands run against. Nil services cause the commands
// that need them to fail with a clear error instead of panicking.
var (
	authService       driving.AuthService
	projectService    driving.ProjectService
	membershipService driving.MembershipService
	pageService       driving.PageService
	versionService    driving.VersionService
	searchService     driving.SearchService
	configStore       driven.ConfigStore
)

// Persistent flags.
var (
	flagVerbose bool
	flagDataDir string
)

// initServices is installed by the composition root to build the
// service graph before any command runs. Tests bypass it by calling
// SetServices directly.
var initServices func(dataDir string) error

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Versioned documentation vault",
	Long: `DocVault manages documentation projects: hierarchical pages,
named version snapshots with a publish lifecycle, role-based project
membership, and full-text search.

Sign in once with 'docvault auth login'; the session is stored in the
config file and reused by subsequent commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if initServices != nil && authService == nil {
			return initServices(flagDataDir)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.docvault)")
	rootCmd.Version = version
}

// Services bundles everything the commands need.
type Services struct {
	Auth       driving.AuthService
	Project    driving.ProjectService
	Membership driving.MembershipService
	Page       driving.PageService
	Version    driving.VersionService
	Search     driving.SearchService
	Config     driven.ConfigStore
}

// SetServices installs the service implementations the commands use.
func SetServices(s Services) {
	authService = s.Auth
	projectService = s.Project
	membershipService = s.Membership
	pageService = s.Page
	versionService = s.Version
	searchService = s.Search
	configStore = s.Config
}

// SetVersion records the build version shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetInitServices installs the lazy service bootstrap used by the
// composition root.
func SetInitServices(fn func(dataDir string) error) {
	initServices = fn
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
