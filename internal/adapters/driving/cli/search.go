package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

// recentSearchKey is the config key recent queries are stored under.
const recentSearchKey = "search.recent"

// maxRecentSearches caps the persisted query history.
const maxRecentSearches = 5

var (
	searchLimit   int
	searchOffset  int
	searchProject string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search page content",
	Long: `Performs full-text search across page content with BM25 ranking.

Signed-in users search the projects they are members of; anonymous
callers search published pages of public projects. Queries shorter
than two characters return no results.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var searchRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent search queries",
	RunE:  runSearchRecent,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringVar(&searchProject, "project", "", "restrict to a project slug")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.AddCommand(searchRecentCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := cmd.Context()
	actorID, err := currentActorID(ctx)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Limit:      searchLimit,
		Offset:     searchOffset,
		PublicOnly: actorID == "",
	}

	if searchProject != "" {
		project, err := projectService.GetBySlug(ctx, actorID, searchProject)
		if err != nil {
			return fmt.Errorf("project not found: %s", searchProject)
		}
		opts.ProjectIDs = []string{project.ID}
	} else if actorID != "" {
		// Members search across their own projects.
		projects, err := projectService.List(ctx, actorID)
		if err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}
		opts.ProjectIDs = make([]string, 0, len(projects))
		for i := range projects {
			opts.ProjectIDs = append(opts.ProjectIDs, projects[i].ID)
		}
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rememberSearch(query)

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func runSearchRecent(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	recent := configStore.GetStringSlice(recentSearchKey)
	if len(recent) == 0 {
		cmd.Println("No recent searches.")
		return nil
	}

	cmd.Println("Recent searches:")
	for i, q := range recent {
		cmd.Printf("  %d. %s\n", i+1, q)
	}
	return nil
}

// rememberSearch records a query in the persisted history: most
// recent first, case-insensitive dedupe, capped length. Best effort;
// a failed write never fails the search.
func rememberSearch(query string) {
	if configStore == nil {
		return
	}
	query = strings.TrimSpace(query)
	if domain.SearchTermTooShort(query) {
		return
	}

	recent := configStore.GetStringSlice(recentSearchKey)
	updated := make([]string, 0, maxRecentSearches)
	updated = append(updated, query)
	for _, q := range recent {
		if strings.EqualFold(q, query) {
			continue
		}
		updated = append(updated, q)
		if len(updated) == maxRecentSearches {
			break
		}
	}

	_ = configStore.Set(recentSearchKey, updated) //nolint:errcheck
}

func outputSearchJSON(cmd *cobra.Command, results []domain.PageSearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.PageSearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, results[i].Title, results[i].Rank)
		if results[i].ProjectName != "" {
			cmd.Printf("      Project: %s\n", results[i].ProjectName)
		}
		if results[i].Path != "" {
			cmd.Printf("      Path: %s\n", results[i].Path)
		}
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", results[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
