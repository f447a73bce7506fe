package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage documentation projects",
	Long: `Create, list, and configure documentation projects.

Examples:
  # Create a private project
  docvault project create "API Reference" --description "REST API docs"

  # Create a public project
  docvault project create "User Guide" --public

  # List your projects
  docvault project list

  # List all public projects (no sign-in needed)
  docvault project list --public

  # Show a project by slug
  docvault project get api-reference`,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects you are a member of",
	RunE:  runProjectList,
}

var projectGetCmd = &cobra.Command{
	Use:   "get [slug]",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectGet,
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [slug]",
	Short: "Update project settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUpdate,
}

var projectLogoCmd = &cobra.Command{
	Use:   "set-logo [slug] [file]",
	Short: "Upload a project logo",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectSetLogo,
}

// Flags for project commands.
var (
	projectDescription string
	projectPublic      bool
	projectPrivate     bool
	projectNewName     string
	projectJSON        bool
)

func init() {
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
	projectCreateCmd.Flags().BoolVar(&projectPublic, "public", false, "expose published content without authentication")

	projectListCmd.Flags().BoolVar(&projectPublic, "public", false, "list public projects instead of your memberships")
	projectListCmd.Flags().BoolVar(&projectJSON, "json", false, "output as JSON")

	projectUpdateCmd.Flags().StringVar(&projectNewName, "name", "", "new project name (re-derives the slug)")
	projectUpdateCmd.Flags().StringVar(&projectDescription, "description", "", "new description")
	projectUpdateCmd.Flags().BoolVar(&projectPublic, "public", false, "make the project public")
	projectUpdateCmd.Flags().BoolVar(&projectPrivate, "private", false, "make the project private")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectGetCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectLogoCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	project, err := projectService.Create(ctx, actorID, driving.CreateProjectInput{
		Name:        args[0],
		Description: projectDescription,
		IsPublic:    projectPublic,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("a project with this name already exists")
		}
		return fmt.Errorf("creating project: %w", err)
	}

	cmd.Printf("Created project: %s (slug: %s)\n", project.Name, project.Slug)
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	ctx := cmd.Context()

	var projects []domain.Project
	var err error
	if projectPublic {
		projects, err = projectService.ListPublic(ctx)
	} else {
		var actorID string
		actorID, err = requireActorID(ctx)
		if err != nil {
			return err
		}
		projects, err = projectService.List(ctx, actorID)
	}
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	if projectJSON {
		data, err := json.MarshalIndent(projects, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal projects: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(projects) == 0 {
		cmd.Println("No projects found.")
		cmd.Println("Create one with: docvault project create <name>")
		return nil
	}

	cmd.Println("Projects:")
	cmd.Println()
	for i := range projects {
		printProject(cmd, &projects[i])
		cmd.Println()
	}
	return nil
}

func runProjectGet(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	ctx := cmd.Context()
	actorID, err := currentActorID(ctx)
	if err != nil {
		return err
	}

	project, err := projectService.GetBySlug(ctx, actorID, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("project not found: %s", args[0])
		}
		return fmt.Errorf("getting project: %w", err)
	}

	printProject(cmd, project)
	return nil
}

func runProjectUpdate(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if projectPublic && projectPrivate {
		return errors.New("--public and --private are mutually exclusive")
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

	var in driving.UpdateProjectInput
	if cmd.Flags().Changed("name") {
		in.Name = &projectNewName
	}
	if cmd.Flags().Changed("description") {
		in.Description = &projectDescription
	}
	if projectPublic {
		v := true
		in.IsPublic = &v
	}
	if projectPrivate {
		v := false
		in.IsPublic = &v
	}

	updated, err := projectService.Update(ctx, actorID, project.ID, in)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return fmt.Errorf("updating a project requires the admin role")
		}
		return fmt.Errorf("updating project: %w", err)
	}

	cmd.Printf("Updated project: %s (slug: %s)\n", updated.Name, updated.Slug)
	return nil
}

func runProjectSetLogo(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
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

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening logo file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	url, err := projectService.SetLogo(ctx, actorID, project.ID, filepath.Base(args[1]), f)
	if err != nil {
		return fmt.Errorf("uploading logo: %w", err)
	}

	cmd.Printf("Logo uploaded: %s\n", url)
	return nil
}

func printProject(cmd *cobra.Command, p *domain.Project) {
	visibility := "private"
	if p.IsPublic {
		visibility = "public"
	}
	cmd.Printf("  %s (%s)\n", p.Name, p.Slug)
	cmd.Printf("    Visibility: %s\n", visibility)
	if p.Description != "" {
		cmd.Printf("    Description: %s\n", p.Description)
	}
	cmd.Printf("    Created: %s\n", p.CreatedAt.Format(time.RFC3339))
}
