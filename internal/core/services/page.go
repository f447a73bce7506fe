package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// Ensure PageService implements the interface.
var _ driving.PageService = (*PageService)(nil)

// maxTreeDepth bounds ancestor walks so a corrupted parent chain
// cannot loop forever.
const maxTreeDepth = 256

// PageService manages a project's page tree.
type PageService struct {
	pages    driven.PageStore
	projects driven.ProjectStore
	members  driven.MemberStore
	roles    driven.RoleStore
}

// NewPageService creates a new page service.
func NewPageService(
	pages driven.PageStore,
	projects driven.ProjectStore,
	members driven.MemberStore,
	roles driven.RoleStore,
) *PageService {
	return &PageService{
		pages:    pages,
		projects: projects,
		members:  members,
		roles:    roles,
	}
}

// Create adds a page at the end of its sibling list.
func (s *PageService) Create(ctx context.Context, actorID, projectID string, in driving.CreatePageInput) (*domain.Page, error) {
	if _, err := requireRank(ctx, s.members, s.roles, actorID, projectID, domain.RankEditor); err != nil {
		return nil, err
	}

	slug := domain.Slugify(in.Title)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	if in.ParentID != nil {
		parent, err := s.pages.Get(ctx, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("looking up parent: %w", err)
		}
		if parent.ProjectID != projectID {
			return nil, domain.ErrInvalidInput
		}
	}

	siblings, err := s.pages.ListChildren(ctx, projectID, in.ParentID)
	if err != nil {
		return nil, fmt.Errorf("listing siblings: %w", err)
	}
	for _, sib := range siblings {
		if sib.Slug == slug {
			return nil, domain.ErrSlugTaken
		}
	}

	now := time.Now().UTC()
	page := domain.Page{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		ParentID:    in.ParentID,
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug,
		Description: in.Description,
		Content:     in.Content,
		OrderIndex:  len(siblings),
		Icon:        in.Icon,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.pages.Save(ctx, page); err != nil {
		return nil, fmt.Errorf("saving page: %w", err)
	}
	return &page, nil
}

// Get retrieves a page, gated on membership or public visibility.
func (s *PageService) Get(ctx context.Context, actorID, pageID string) (*domain.Page, error) {
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := s.gateRead(ctx, actorID, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetByPath resolves a slug path ("guides/setup") within a project.
func (s *PageService) GetByPath(ctx context.Context, actorID, projectID, pagePath string) (*domain.Page, error) {
	segments := strings.Split(strings.Trim(pagePath, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil, domain.ErrInvalidInput
	}

	var parentID *string
	var current *domain.Page
	for _, segment := range segments {
		children, err := s.pages.ListChildren(ctx, projectID, parentID)
		if err != nil {
			return nil, fmt.Errorf("listing children: %w", err)
		}

		current = nil
		for i := range children {
			if children[i].Slug == segment {
				current = &children[i]
				break
			}
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		parentID = &current.ID
	}

	if err := s.gateRead(ctx, actorID, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Update mutates page fields. Retitling re-derives the slug, which
// must stay unique among siblings.
func (s *PageService) Update(ctx context.Context, actorID, pageID string, in driving.UpdatePageInput) (*domain.Page, error) {
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, page.ProjectID, domain.RankEditor); err != nil {
		return nil, err
	}

	if in.Title != nil {
		slug := domain.Slugify(*in.Title)
		if slug == "" {
			return nil, domain.ErrInvalidInput
		}
		if slug != page.Slug {
			siblings, err := s.pages.ListChildren(ctx, page.ProjectID, page.ParentID)
			if err != nil {
				return nil, fmt.Errorf("listing siblings: %w", err)
			}
			for _, sib := range siblings {
				if sib.ID != page.ID && sib.Slug == slug {
					return nil, domain.ErrSlugTaken
				}
			}
		}
		page.Title = strings.TrimSpace(*in.Title)
		page.Slug = slug
	}
	if in.Description != nil {
		page.Description = *in.Description
	}
	if in.Content != nil {
		page.Content = *in.Content
	}
	if in.Icon != nil {
		page.Icon = *in.Icon
	}
	if in.IsPublished != nil {
		page.IsPublished = *in.IsPublished
	}
	page.UpdatedBy = actorID
	page.UpdatedAt = time.Now().UTC()

	if err := s.pages.Save(ctx, *page); err != nil {
		return nil, fmt.Errorf("saving page: %w", err)
	}
	return page, nil
}

// Move re-parents a page and/or changes its sibling position. The
// destination sibling list is renumbered densely; when the parent
// changes, the vacated sibling list is renumbered too. A page may
// never become a descendant of itself.
func (s *PageService) Move(ctx context.Context, actorID, pageID string, newParentID *string, newIndex int) error {
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, page.ProjectID, domain.RankEditor); err != nil {
		return err
	}

	if newParentID != nil {
		if *newParentID == pageID {
			return domain.ErrPageCycle
		}
		parent, err := s.pages.Get(ctx, *newParentID)
		if err != nil {
			return fmt.Errorf("looking up parent: %w", err)
		}
		if parent.ProjectID != page.ProjectID {
			return domain.ErrInvalidInput
		}
		// Ancestry check: walking up from the target parent must
		// never reach the page being moved.
		if err := s.checkNoCycle(ctx, pageID, parent); err != nil {
			return err
		}
	}

	parentChanged := !sameParent(page.ParentID, newParentID)

	destination, err := s.pages.ListChildren(ctx, page.ProjectID, newParentID)
	if err != nil {
		return fmt.Errorf("listing destination siblings: %w", err)
	}

	ordered := make([]string, 0, len(destination)+1)
	for _, sib := range destination {
		if sib.ID == pageID {
			continue
		}
		if parentChanged && sib.Slug == page.Slug {
			return domain.ErrSlugTaken
		}
		ordered = append(ordered, sib.ID)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(ordered) {
		newIndex = len(ordered)
	}
	ordered = append(ordered[:newIndex], append([]string{pageID}, ordered[newIndex:]...)...)

	if err := s.pages.Move(ctx, pageID, newParentID, ordered); err != nil {
		return fmt.Errorf("moving page: %w", err)
	}

	if parentChanged {
		if err := s.renumberSiblings(ctx, page.ProjectID, page.ParentID, pageID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a page and all its descendants, then closes the gap
// in the vacated sibling list.
func (s *PageService) Delete(ctx context.Context, actorID, pageID string) error {
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return err
	}
	if _, err := requireRank(ctx, s.members, s.roles, actorID, page.ProjectID, domain.RankEditor); err != nil {
		return err
	}

	if err := s.pages.Delete(ctx, pageID); err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return s.renumberSiblings(ctx, page.ProjectID, page.ParentID, pageID)
}

// Tree returns the project's page forest, ordered and with paths.
func (s *PageService) Tree(ctx context.Context, actorID, projectID string) ([]driving.PageNode, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsPublic {
		if _, err := memberRole(ctx, s.members, s.roles, actorID, projectID); err != nil {
			if errors.Is(err, domain.ErrNotMember) || errors.Is(err, domain.ErrAuthRequired) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
	}

	pages, err := s.pages.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	children := make(map[string][]domain.Page)
	for _, p := range pages {
		key := ""
		if p.ParentID != nil {
			key = *p.ParentID
		}
		children[key] = append(children[key], p)
	}
	for key := range children {
		sort.SliceStable(children[key], func(i, j int) bool {
			return children[key][i].OrderIndex < children[key][j].OrderIndex
		})
	}

	var build func(parentKey string, prefix []string) []driving.PageNode
	build = func(parentKey string, prefix []string) []driving.PageNode {
		var nodes []driving.PageNode //nolint:prealloc // size unknown until built
		for _, p := range children[parentKey] {
			slugs := append(append([]string{}, prefix...), p.Slug)
			nodes = append(nodes, driving.PageNode{
				Page:     p,
				Path:     domain.PagePath(slugs),
				Children: build(p.ID, slugs),
			})
		}
		return nodes
	}
	return build("", nil), nil
}

// Path returns the slug path of a page, root first.
func (s *PageService) Path(ctx context.Context, pageID string) (string, error) {
	var slugs []string
	id := pageID
	for depth := 0; depth < maxTreeDepth; depth++ {
		page, err := s.pages.Get(ctx, id)
		if err != nil {
			return "", err
		}
		slugs = append([]string{page.Slug}, slugs...)
		if page.ParentID == nil {
			return domain.PagePath(slugs), nil
		}
		id = *page.ParentID
	}
	return "", domain.ErrPageCycle
}

// gateRead enforces page read visibility: members of any rank see
// everything; anyone sees published pages of public projects.
func (s *PageService) gateRead(ctx context.Context, actorID string, page *domain.Page) error {
	project, err := s.projects.Get(ctx, page.ProjectID)
	if err != nil {
		return err
	}
	if project.IsPublic && page.IsPublished {
		return nil
	}
	if _, err := memberRole(ctx, s.members, s.roles, actorID, page.ProjectID); err != nil {
		if errors.Is(err, domain.ErrNotMember) || errors.Is(err, domain.ErrAuthRequired) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// checkNoCycle walks up from the target parent and fails if it
// reaches the page being moved.
func (s *PageService) checkNoCycle(ctx context.Context, pageID string, parent *domain.Page) error {
	current := parent
	for depth := 0; depth < maxTreeDepth; depth++ {
		if current.ID == pageID {
			return domain.ErrPageCycle
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := s.pages.Get(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("walking ancestors: %w", err)
		}
		current = next
	}
	return domain.ErrPageCycle
}

// renumberSiblings rewrites a dense order for the children of a
// parent, skipping the page that just left the list.
func (s *PageService) renumberSiblings(ctx context.Context, projectID string, parentID *string, excludeID string) error {
	siblings, err := s.pages.ListChildren(ctx, projectID, parentID)
	if err != nil {
		return fmt.Errorf("listing siblings: %w", err)
	}
	ordered := make([]string, 0, len(siblings))
	for _, sib := range siblings {
		if sib.ID == excludeID {
			continue
		}
		ordered = append(ordered, sib.ID)
	}
	if err := s.pages.Renumber(ctx, ordered); err != nil {
		return fmt.Errorf("renumbering siblings: %w", err)
	}
	return nil
}

// sameParent compares two optional parent references by value.
func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
