package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

type createPageRequest struct {
	Title       string `json:"title" binding:"required"`
	ParentPath  string `json:"parent_path"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Icon        string `json:"icon"`
}

type updatePageRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Icon        *string `json:"icon"`
	IsPublished *bool   `json:"is_published"`
}

type movePageRequest struct {
	// ParentID is the new parent page ID. Null moves to the root
	// level when Root is set; otherwise the parent stays unchanged.
	ParentID *string `json:"parent_id"`
	Root     bool    `json:"root"`
	Index    int     `json:"index"`
}

type pageResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsPublished bool   `json:"is_published"`
	OrderIndex  int    `json:"order_index"`
}

func toPageResponse(p *domain.Page) pageResponse {
	return pageResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Content:     p.Content,
		Icon:        p.Icon,
		IsPublished: p.IsPublished,
		OrderIndex:  p.OrderIndex,
	}
}

type pageTreeNode struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Path     string         `json:"path"`
	Children []pageTreeNode `json:"children,omitempty"`
}

func toTreeResponse(nodes []driving.PageNode) []pageTreeNode {
	resp := make([]pageTreeNode, len(nodes))
	for i := range nodes {
		resp[i] = pageTreeNode{
			ID:       nodes[i].Page.ID,
			Title:    nodes[i].Page.Title,
			Path:     nodes[i].Path,
			Children: toTreeResponse(nodes[i].Children),
		}
	}
	return resp
}

func (s *Server) handlePageTree(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := s.ports.Project.GetBySlug(ctx, actorID(c), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	tree, err := s.ports.Page.Tree(ctx, actorID(c), project.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTreeResponse(tree))
}

func (s *Server) handlePageCreate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req createPageRequest
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

	in := driving.CreatePageInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Icon:        req.Icon,
	}
	if req.ParentPath != "" {
		parent, err := s.ports.Page.GetByPath(ctx, actor, project.ID, req.ParentPath)
		if err != nil {
			writeError(c, err)
			return
		}
		in.ParentID = &parent.ID
	}

	page, err := s.ports.Page.Create(ctx, actor, project.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPageResponse(page))
}

func (s *Server) handlePageGet(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := s.ports.Project.GetBySlug(ctx, actorID(c), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	path := strings.TrimPrefix(c.Param("path"), "/")
	page, err := s.ports.Page.GetByPath(ctx, actorID(c), project.ID, path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page))
}

func (s *Server) handlePageUpdate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := s.ports.Page.Update(c.Request.Context(), actor, c.Param("id"), driving.UpdatePageInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Icon:        req.Icon,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page))
}

func (s *Server) handlePageMove(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req movePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	newParentID := req.ParentID
	if !req.Root && newParentID == nil {
		// Reorder within the current parent.
		page, err := s.ports.Page.Get(ctx, actor, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		newParentID = page.ParentID
	}
	if req.Root {
		newParentID = nil
	}

	if err := s.ports.Page.Move(ctx, actor, c.Param("id"), newParentID, req.Index); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePageDelete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := s.ports.Page.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
