package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
)

const defaultSearchLimit = 20

type searchResultResponse struct {
	PageID      string  `json:"page_id"`
	Title       string  `json:"title"`
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Path        string  `json:"path"`
	Snippet     string  `json:"snippet,omitempty"`
	Rank        float64 `json:"rank"`
}

func (s *Server) handleSearch(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	opts := domain.SearchOptions{Limit: defaultSearchLimit}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		opts.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		opts.Offset = n
	}

	ctx := c.Request.Context()
	actor := actorID(c)
	if actor == "" {
		opts.PublicOnly = true
	}
	if slug := c.Query("project"); slug != "" {
		project, err := s.ports.Project.GetBySlug(ctx, actor, slug)
		if err != nil {
			writeError(c, err)
			return
		}
		opts.ProjectIDs = []string{project.ID}
	} else if actor != "" {
		// Scope to the actor's own projects so private content from
		// other projects never surfaces.
		projects, err := s.ports.Project.List(ctx, actor)
		if err != nil {
			writeError(c, err)
			return
		}
		if len(projects) == 0 {
			opts.PublicOnly = true
		}
		for _, p := range projects {
			opts.ProjectIDs = append(opts.ProjectIDs, p.ID)
		}
	}

	results, err := s.ports.Search.Search(ctx, term, opts)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]searchResultResponse, len(results))
	for i, r := range results {
		resp[i] = searchResultResponse{
			PageID:      r.PageID,
			Title:       r.Title,
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
			Path:        r.Path,
			Snippet:     r.Snippet,
			Rank:        r.Rank,
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": resp, "count": len(resp)})
}
