package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/adapters/driving/httpapi"
)

var flagServeAddr string

// blobDir is installed by the composition root so the HTTP server can
// serve uploaded logos. Empty disables static blob serving.
var blobDir string

// SetBlobDir records where uploaded blobs live on disk.
func SetBlobDir(dir string) {
	blobDir = dir
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the REST API server.

The API exposes the full surface: accounts and sessions, projects and
membership, pages, version snapshots, and search. Authentication uses
bearer session tokens issued by POST /api/auth/login.

Examples:
  # Listen on the default address
  docvault serve

  # Listen on a specific port
  docvault serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Auth:       authService,
		Project:    projectService,
		Membership: membershipService,
		Page:       pageService,
		Version:    versionService,
		Search:     searchService,
	}, httpapi.Options{BlobDir: blobDir})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "API server listening on %s\n", flagServeAddr)
	return server.Run(cmd.Context(), flagServeAddr)
}
