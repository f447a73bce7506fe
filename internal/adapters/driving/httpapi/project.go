package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	resp := projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
	}
	if p.LogoPath != "" {
		resp.LogoURL = "/blobs/" + p.LogoPath
	}
	return resp
}

func (s *Server) handleProjectCreate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := s.ports.Project.Create(c.Request.Context(), actor, driving.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (s *Server) handleProjectList(c *gin.Context) {
	ctx := c.Request.Context()

	// ?public=true lists public projects without authentication.
	if c.Query("public") == "true" {
		projects, err := s.ports.Project.ListPublic(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, projectListResponse(projects))
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	projects, err := s.ports.Project.List(ctx, actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectListResponse(projects))
}

func projectListResponse(projects []domain.Project) []projectResponse {
	resp := make([]projectResponse, len(projects))
	for i := range projects {
		resp[i] = toProjectResponse(&projects[i])
	}
	return resp
}

func (s *Server) handleProjectGet(c *gin.Context) {
	project, err := s.ports.Project.GetBySlug(c.Request.Context(), actorID(c), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (s *Server) handleProjectUpdate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req updateProjectRequest
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

	updated, err := s.ports.Project.Update(ctx, actor, project.ID, driving.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(updated))
}

func (s *Server) handleProjectSetLogo(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	project, err := s.ports.Project.GetBySlug(ctx, actor, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}
	defer file.Close() //nolint:errcheck

	url, err := s.ports.Project.SetLogo(ctx, actor, project.ID, header.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Membership handlers.

type addMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (s *Server) handleMemberList(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	project, err := s.ports.Project.GetBySlug(ctx, actor, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	members, err := s.ports.Membership.ListMembers(ctx, actor, project.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	type memberResponse struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name,omitempty"`
		Role        string `json:"role"`
	}
	resp := make([]memberResponse, len(members))
	for i := range members {
		resp[i] = memberResponse{
			Email:       members[i].User.Email,
			DisplayName: members[i].User.DisplayName,
			Role:        members[i].Role.Name,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMemberAdd(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	projectID, userID, err := s.resolveMember(c, actor, req.Email)
	if err != nil {
		return
	}

	if _, err := s.ports.Membership.AddMember(ctx, actor, projectID, userID, req.Role); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) handleMemberSetRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID, userID, err := s.resolveMember(c, actor, c.Param("email"))
	if err != nil {
		return
	}

	if err := s.ports.Membership.UpdateMemberRole(c.Request.Context(), actor, projectID, userID, req.Role); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMemberRemove(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	projectID, userID, err := s.resolveMember(c, actor, c.Param("email"))
	if err != nil {
		return
	}

	if err := s.ports.Membership.RemoveMember(c.Request.Context(), actor, projectID, userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveMember maps the slug route param and an email to IDs. On
// failure the response is already written and a non-nil error returned.
func (s *Server) resolveMember(c *gin.Context, actor, email string) (projectID, userID string, err error) {
	ctx := c.Request.Context()

	project, err := s.ports.Project.GetBySlug(ctx, actor, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return "", "", err
	}

	user, err := s.ports.Membership.FindUser(ctx, actor, email)
	if err != nil {
		writeError(c, err)
		return "", "", err
	}
	return project.ID, user.ID, nil
}

func (s *Server) handleRoles(c *gin.Context) {
	roles, err := s.ports.Membership.Roles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	type roleResponse struct {
		Name      string `json:"name"`
		Rank      int    `json:"rank"`
		IsDefault bool   `json:"is_default"`
	}
	resp := make([]roleResponse, len(roles))
	for i := range roles {
		resp[i] = roleResponse{
			Name:      roles[i].Name,
			Rank:      roles[i].Rank,
			IsDefault: roles[i].IsDefault,
		}
	}
	c.JSON(http.StatusOK, resp)
}
