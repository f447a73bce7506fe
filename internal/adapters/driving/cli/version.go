package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

var docVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage project version snapshots",
	Long: `Create, publish, and restore named snapshots of a project's pages.

A version starts as a draft, becomes immutable when published, and the
published version becomes the project's current version. Restoring an
older version overwrites live pages from its snapshots.

Examples:
  # Snapshot the project as a draft (number suggested if omitted)
  docvault version create api-reference --number 1.0.0 --name "First release"

  # Publish the draft
  docvault version publish api-reference 1.0.0

  # List versions, including archived ones
  docvault version list api-reference --all

  # Roll the project back
  docvault version restore api-reference 1.0.0`,
}

var versionCreateCmd = &cobra.Command{
	Use:   "create [project-slug]",
	Short: "Snapshot the project into a new draft version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionCreate,
}

var versionListCmd = &cobra.Command{
	Use:   "list [project-slug]",
	Short: "List a project's versions",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionList,
}

var versionPublishCmd = &cobra.Command{
	Use:   "publish [project-slug] [version-number]",
	Short: "Publish a draft and make it current",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionPublish,
}

var versionArchiveCmd = &cobra.Command{
	Use:   "archive [project-slug] [version-number]",
	Short: "Archive a non-current version",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionArchive,
}

var versionDeleteCmd = &cobra.Command{
	Use:   "delete [project-slug] [version-number]",
	Short: "Delete a draft version",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionDelete,
}

var versionRestoreCmd = &cobra.Command{
	Use:   "restore [project-slug] [version-number]",
	Short: "Overwrite live pages from a published version",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionRestore,
}

var versionSnapshotsCmd = &cobra.Command{
	Use:   "snapshots [project-slug] [version-number]",
	Short: "List the pages captured in a version",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionSnapshots,
}

// Flags for version commands.
var (
	versionNumber string
	versionName   string
	versionNotes  string
	versionAll    bool
)

func init() {
	versionCreateCmd.Flags().StringVar(&versionNumber, "number", "", "version number (suggested if omitted)")
	versionCreateCmd.Flags().StringVar(&versionName, "name", "", "release title")
	versionCreateCmd.Flags().StringVar(&versionNotes, "notes", "", "release notes")

	versionListCmd.Flags().BoolVar(&versionAll, "all", false, "include archived versions")

	docVersionCmd.AddCommand(versionCreateCmd)
	docVersionCmd.AddCommand(versionListCmd)
	docVersionCmd.AddCommand(versionPublishCmd)
	docVersionCmd.AddCommand(versionArchiveCmd)
	docVersionCmd.AddCommand(versionDeleteCmd)
	docVersionCmd.AddCommand(versionRestoreCmd)
	docVersionCmd.AddCommand(versionSnapshotsCmd)
	rootCmd.AddCommand(docVersionCmd)
}

// resolveVersion resolves a project slug and a version number to the
// matching version. Archived versions are found too.
func resolveVersion(ctx context.Context, actorID, slug, number string) (*domain.ProjectVersion, error) {
	project, err := projectService.GetBySlug(ctx, actorID, slug)
	if err != nil {
		return nil, fmt.Errorf("project not found: %s", slug)
	}

	versions, err := versionService.List(ctx, actorID, project.ID, true)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	for i := range versions {
		if versions[i].VersionNumber == number {
			return &versions[i], nil
		}
	}
	return nil, fmt.Errorf("version not found: %s", number)
}

func runVersionCreate(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	project, err := projectService.GetBySlug(ctx, actorID, args[0])
	if err != nil {
		return fmt.Errorf("project not found: %s", args[0])
	}

	number := versionNumber
	if number == "" {
		number, err = versionService.SuggestNext(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("suggesting version number: %w", err)
		}
	}

	created, err := versionService.Create(ctx, actorID, project.ID, driving.CreateVersionInput{
		VersionNumber: number,
		Name:          versionName,
		Notes:         versionNotes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return fmt.Errorf("creating versions requires the editor role")
		}
		return fmt.Errorf("creating version: %w", err)
	}

	cmd.Printf("Created draft version %s (%d pages)\n", created.VersionNumber, created.PageCount)
	cmd.Printf("Publish with: docvault version publish %s %s\n", args[0], created.VersionNumber)
	return nil
}

func runVersionList(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	project, err := projectService.GetBySlug(ctx, actorID, args[0])
	if err != nil {
		return fmt.Errorf("project not found: %s", args[0])
	}

	versions, err := versionService.List(ctx, actorID, project.ID, versionAll)
	if err != nil {
		return fmt.Errorf("listing versions: %w", err)
	}

	if len(versions) == 0 {
		cmd.Println("No versions.")
		cmd.Printf("Create one with: docvault version create %s\n", args[0])
		return nil
	}

	cmd.Printf("Versions of %s:\n", project.Name)
	cmd.Println()
	for i := range versions {
		v := &versions[i]
		cmd.Printf("  %s%s\n", v.VersionNumber, versionStateSuffix(v))
		if v.Name != "" {
			cmd.Printf("    Name: %s\n", v.Name)
		}
		cmd.Printf("    Pages: %d\n", v.PageCount)
		cmd.Printf("    Created: %s\n", v.CreatedAt.Format(time.RFC3339))
		if !v.PublishedAt.IsZero() {
			cmd.Printf("    Published: %s\n", v.PublishedAt.Format(time.RFC3339))
		}
		cmd.Println()
	}
	return nil
}

func versionStateSuffix(v *domain.ProjectVersion) string {
	switch {
	case v.IsCurrent:
		return " (current)"
	case v.IsArchived:
		return " (archived)"
	case v.IsDraft:
		return " (draft)"
	}
	return ""
}

func runVersionPublish(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	v, err := resolveVersion(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	published, err := versionService.Publish(ctx, actorID, v.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVersionNotDraft):
			return fmt.Errorf("version %s is already published", args[1])
		case errors.Is(err, domain.ErrVersionArchived):
			return fmt.Errorf("version %s is archived", args[1])
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("publishing requires the editor role")
		}
		return fmt.Errorf("publishing version: %w", err)
	}

	cmd.Printf("Published version %s; it is now current.\n", published.VersionNumber)
	return nil
}

func runVersionArchive(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	v, err := resolveVersion(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	if err := versionService.Archive(ctx, actorID, v.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrVersionCurrent):
			return fmt.Errorf("cannot archive the current version")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("archiving requires the editor role")
		}
		return fmt.Errorf("archiving version: %w", err)
	}

	cmd.Printf("Archived version %s\n", args[1])
	return nil
}

func runVersionDelete(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	v, err := resolveVersion(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	if err := versionService.Delete(ctx, actorID, v.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrVersionCurrent):
			return fmt.Errorf("cannot delete the current version")
		case errors.Is(err, domain.ErrVersionNotDraft):
			return fmt.Errorf("only draft versions can be deleted; archive instead")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("deleting versions requires the editor role")
		}
		return fmt.Errorf("deleting version: %w", err)
	}

	cmd.Printf("Deleted version %s\n", args[1])
	return nil
}

func runVersionRestore(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	v, err := resolveVersion(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	restored, err := versionService.Restore(ctx, actorID, v.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVersionCurrent):
			return fmt.Errorf("version %s is already current", args[1])
		case errors.Is(err, domain.ErrVersionDraft):
			return fmt.Errorf("drafts cannot be restored; publish first")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("restoring requires the editor role")
		}
		return fmt.Errorf("restoring version: %w", err)
	}

	cmd.Printf("Restored %d pages from version %s; it is now current.\n", restored, args[1])
	return nil
}

func runVersionSnapshots(cmd *cobra.Command, args []string) error {
	if versionService == nil || projectService == nil {
		return errors.New("version service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	v, err := resolveVersion(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	snapshots, err := versionService.Snapshots(ctx, actorID, v.ID)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		cmd.Println("No snapshots.")
		return nil
	}

	cmd.Printf("Pages in version %s:\n", v.VersionNumber)
	for i := range snapshots {
		cmd.Printf("  %s\n", snapshots[i].Title)
	}
	return nil
}
