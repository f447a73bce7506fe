package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

type createVersionRequest struct {
	VersionNumber string `json:"version_number"`
	Name          string `json:"name"`
	Notes         string `json:"notes"`
}

type versionResponse struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	VersionNumber string `json:"version_number"`
	Name          string `json:"name,omitempty"`
	Notes         string `json:"notes,omitempty"`
	IsDraft       bool   `json:"is_draft"`
	IsCurrent     bool   `json:"is_current"`
	IsArchived    bool   `json:"is_archived"`
	PageCount     int    `json:"page_count"`
	// PublishedAt is absent while the version is a draft.
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func toVersionResponse(v *domain.ProjectVersion) versionResponse {
	resp := versionResponse{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		VersionNumber: v.VersionNumber,
		Name:          v.Name,
		Notes:         v.Notes,
		IsDraft:       v.IsDraft,
		IsCurrent:     v.IsCurrent,
		IsArchived:    v.IsArchived,
		PageCount:     v.PageCount,
	}
	if !v.PublishedAt.IsZero() {
		publishedAt := v.PublishedAt
		resp.PublishedAt = &publishedAt
	}
	return resp
}

func (s *Server) handleVersionList(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := s.ports.Project.GetBySlug(ctx, actorID(c), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	includeArchived := c.Query("all") == "true"
	versions, err := s.ports.Version.List(ctx, actorID(c), project.ID, includeArchived)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]versionResponse, len(versions))
	for i := range versions {
		resp[i] = toVersionResponse(&versions[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleVersionCreate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req createVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	project, err := s.ports.Project.GetBySlug(ctx, actor, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	number := req.VersionNumber
	if number == "" {
		number, err = s.ports.Version.SuggestNext(ctx, project.ID)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	version, err := s.ports.Version.Create(ctx, actor, project.ID, driving.CreateVersionInput{
		VersionNumber: number,
		Name:          req.Name,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVersionResponse(version))
}

func (s *Server) handleVersionSuggest(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := s.ports.Project.GetBySlug(ctx, actorID(c), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	next, err := s.ports.Version.SuggestNext(ctx, project.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version_number": next})
}

func (s *Server) handleVersionGet(c *gin.Context) {
	version, err := s.ports.Version.Get(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVersionResponse(version))
}

func (s *Server) handleVersionPublish(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	version, err := s.ports.Version.Publish(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVersionResponse(version))
}

func (s *Server) handleVersionArchive(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := s.ports.Version.Archive(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleVersionDelete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := s.ports.Version.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleVersionRestore(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	restored, err := s.ports.Version.Restore(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages_restored": restored})
}

func (s *Server) handleVersionSnapshots(c *gin.Context) {
	snapshots, err := s.ports.Version.Snapshots(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	type snapshotResponse struct {
		PageID      string `json:"page_id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Content     string `json:"content,omitempty"`
	}
	resp := make([]snapshotResponse, len(snapshots))
	for i, snap := range snapshots {
		resp[i] = snapshotResponse{
			PageID:      snap.PageID,
			Title:       snap.Title,
			Description: snap.Description,
			Content:     snap.Content,
		}
	}
	c.JSON(http.StatusOK, resp)
}
