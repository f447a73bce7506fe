package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage documentation pages",
	Long: `Create, edit, move, and delete pages in a project's content tree.

Pages are addressed by project slug plus slug path (e.g. "guides/setup").
Content is read from a file or stdin.

Examples:
  # Create a root page
  docvault page create api-reference --title "Getting Started"

  # Create a child page with content from a file
  docvault page create api-reference --title "Setup" \
    --parent getting-started --content setup.json

  # Show a page
  docvault page get api-reference getting-started/setup

  # Move a page to the top of its siblings
  docvault page move api-reference getting-started/setup --index 0

  # Show the project's page tree
  docvault page tree api-reference`,
}

var pageCreateCmd = &cobra.Command{
	Use:   "create [project-slug]",
	Short: "Create a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageCreate,
}

var pageGetCmd = &cobra.Command{
	Use:   "get [project-slug] [path]",
	Short: "Show a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageGet,
}

var pageUpdateCmd = &cobra.Command{
	Use:   "update [project-slug] [path]",
	Short: "Update a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageUpdate,
}

var pageMoveCmd = &cobra.Command{
	Use:   "move [project-slug] [path]",
	Short: "Move a page in the tree",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageMove,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete [project-slug] [path]",
	Short: "Delete a page and its descendants",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageDelete,
}

var pageTreeCmd = &cobra.Command{
	Use:   "tree [project-slug]",
	Short: "Show a project's page tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageTree,
}

// Flags for page commands.
var (
	pageTitle       string
	pageParent      string
	pageDescription string
	pageContentFile string
	pageIcon        string
	pagePublish     bool
	pageUnpublish   bool
	pageMoveParent  string
	pageMoveRoot    bool
	pageMoveIndex   int
)

func init() {
	pageCreateCmd.Flags().StringVar(&pageTitle, "title", "", "page title (required)")
	pageCreateCmd.Flags().StringVar(&pageParent, "parent", "", "slug path of the parent page")
	pageCreateCmd.Flags().StringVar(&pageDescription, "description", "", "page description")
	pageCreateCmd.Flags().StringVar(&pageContentFile, "content", "", "content file path (- for stdin)")
	pageCreateCmd.Flags().StringVar(&pageIcon, "icon", "", "display icon identifier")
	_ = pageCreateCmd.MarkFlagRequired("title") //nolint:errcheck

	pageUpdateCmd.Flags().StringVar(&pageTitle, "title", "", "new title (re-derives the slug)")
	pageUpdateCmd.Flags().StringVar(&pageDescription, "description", "", "new description")
	pageUpdateCmd.Flags().StringVar(&pageContentFile, "content", "", "content file path (- for stdin)")
	pageUpdateCmd.Flags().StringVar(&pageIcon, "icon", "", "new icon identifier")
	pageUpdateCmd.Flags().BoolVar(&pagePublish, "publish", false, "include the page in public content")
	pageUpdateCmd.Flags().BoolVar(&pageUnpublish, "unpublish", false, "exclude the page from public content")

	pageMoveCmd.Flags().StringVar(&pageMoveParent, "parent", "", "slug path of the new parent")
	pageMoveCmd.Flags().BoolVar(&pageMoveRoot, "root", false, "move the page to the root level")
	pageMoveCmd.Flags().IntVar(&pageMoveIndex, "index", 0, "target position among siblings")

	pageCmd.AddCommand(pageCreateCmd)
	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageUpdateCmd)
	pageCmd.AddCommand(pageMoveCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	pageCmd.AddCommand(pageTreeCmd)
	rootCmd.AddCommand(pageCmd)
}

// resolvePage resolves a project slug and a page path to the page.
func resolvePage(ctx context.Context, actorID, slug, path string) (*domain.Page, error) {
	project, err := projectService.GetBySlug(ctx, actorID, slug)
	if err != nil {
		return nil, fmt.Errorf("project not found: %s", slug)
	}

	page, err := pageService.GetByPath(ctx, actorID, project.ID, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("page not found: %s", path)
		}
		return nil, fmt.Errorf("getting page: %w", err)
	}
	return page, nil
}

// readContentArg loads page content from a file path or stdin ("-").
func readContentArg(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading content file: %w", err)
	}
	return string(data), nil
}

func runPageCreate(cmd *cobra.Command, args []string) error {
	if pageService == nil || projectService == nil {
		return errors.New("page service not configured")
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

	in := driving.CreatePageInput{
		Title:       pageTitle,
		Description: pageDescription,
		Icon:        pageIcon,
	}

	if pageParent != "" {
		parent, err := pageService.GetByPath(ctx, actorID, project.ID, pageParent)
		if err != nil {
			return fmt.Errorf("parent page not found: %s", pageParent)
		}
		in.ParentID = &parent.ID
	}

	if pageContentFile != "" {
		content, err := readContentArg(pageContentFile)
		if err != nil {
			return err
		}
		in.Content = content
	}

	page, err := pageService.Create(ctx, actorID, project.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlugTaken):
			return fmt.Errorf("a sibling page with this title already exists")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("creating pages requires the editor role")
		}
		return fmt.Errorf("creating page: %w", err)
	}

	path, err := pageService.Path(ctx, page.ID)
	if err != nil {
		path = page.Slug
	}
	cmd.Printf("Created page: %s (%s)\n", page.Title, path)
	return nil
}

func runPageGet(cmd *cobra.Command, args []string) error {
	if pageService == nil || projectService == nil {
		return errors.New("page service not configured")
	}

	ctx := cmd.Context()
	actorID, err := currentActorID(ctx)
	if err != nil {
		return err
	}

	page, err := resolvePage(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	cmd.Printf("%s\n", page.Title)
	if page.Description != "" {
		cmd.Printf("%s\n", page.Description)
	}
	cmd.Println()
	if page.Content != "" {
		cmd.Println(page.Content)
	} else {
		cmd.Println("(container page, no content)")
	}
	return nil
}

func runPageUpdate(cmd *cobra.Command, args []string) error {
	if pageService == nil || projectService == nil {
		return errors.New("page service not configured")
	}
	if pagePublish && pageUnpublish {
		return errors.New("--publish and --unpublish are mutually exclusive")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	page, err := resolvePage(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	var in driving.UpdatePageInput
	if cmd.Flags().Changed("title") {
		in.Title = &pageTitle
	}
	if cmd.Flags().Changed("description") {
		in.Description = &pageDescription
	}
	if cmd.Flags().Changed("icon") {
		in.Icon = &pageIcon
	}
	if cmd.Flags().Changed("content") {
		content, err := readContentArg(pageContentFile)
		if err != nil {
			return err
		}
		in.Content = &content
	}
	if pagePublish {
		v := true
		in.IsPublished = &v
	}
	if pageUnpublish {
		v := false
		in.IsPublished = &v
	}

	updated, err := pageService.Update(ctx, actorID, page.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlugTaken):
			return fmt.Errorf("a sibling page with this title already exists")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("editing pages requires the editor role")
		}
		return fmt.Errorf("updating page: %w", err)
	}

	cmd.Printf("Updated page: %s\n", updated.Title)
	return nil
}

func runPageMove(cmd *cobra.Command, args []string) error {
	if pageService == nil || projectService == nil {
		return errors.New("page service not configured")
	}
	if pageMoveParent != "" && pageMoveRoot {
		return errors.New("--parent and --root are mutually exclusive")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	page, err := resolvePage(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	// Default target: reorder within the current parent.
	newParentID := page.ParentID
	if pageMoveRoot {
		newParentID = nil
	} else if pageMoveParent != "" {
		parent, err := resolvePage(ctx, actorID, args[0], pageMoveParent)
		if err != nil {
			return err
		}
		newParentID = &parent.ID
	}

	if err := pageService.Move(ctx, actorID, page.ID, newParentID, pageMoveIndex); err != nil {
		switch {
		case errors.Is(err, domain.ErrPageCycle):
			return fmt.Errorf("cannot move a page under its own descendant")
		case errors.Is(err, domain.ErrSlugTaken):
			return fmt.Errorf("a sibling page with this slug already exists at the target")
		case errors.Is(err, domain.ErrPermissionDenied):
			return fmt.Errorf("moving pages requires the editor role")
		}
		return fmt.Errorf("moving page: %w", err)
	}

	cmd.Printf("Moved page: %s\n", page.Title)
	return nil
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	if pageService == nil || projectService == nil {
		return errors.New("page service not configured")
	}

	ctx := cmd.Context()
	actorID, err := requireActorID(ctx)
	if err != nil {
		return err
	}

	page, err := resolvePage(ctx, actorID, args[0], args[1])
	if err != nil {
		return err
	}

	if err := pageService.Delete(ctx, actorID, page.ID); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return fmt.Errorf("deleting pages requires the editor role")
		}
		return fmt.Errorf("deleting page: %w", err)
	}

	cmd.Printf("Deleted page: %s (descendants included)\n", page.Title)
	return nil
}

func runPageTree(cmd *cobra.Command, args []string) error {
	if pageService == nil || projectService == nil {
		return errors.New("page service not configured")
	}

	ctx := cmd.Context()
	actorID, err := currentActorID(ctx)
	if err != nil {
		return err
	}

	project, err := projectService.GetBySlug(ctx, actorID, args[0])
	if err != nil {
		return fmt.Errorf("project not found: %s", args[0])
	}

	tree, err := pageService.Tree(ctx, actorID, project.ID)
	if err != nil {
		return fmt.Errorf("loading page tree: %w", err)
	}

	if len(tree) == 0 {
		cmd.Println("No pages.")
		return nil
	}

	cmd.Printf("%s\n", project.Name)
	printTree(cmd, tree, 1)
	return nil
}

func printTree(cmd *cobra.Command, nodes []driving.PageNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range nodes {
		marker := ""
		if nodes[i].Page.IsPublished {
			marker = " *"
		}
		cmd.Printf("%s%s (%s)%s\n", indent, nodes[i].Page.Title, nodes[i].Page.Slug, marker)
		printTree(cmd, nodes[i].Children, depth+1)
	}
}
