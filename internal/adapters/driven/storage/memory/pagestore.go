package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// PageStore is an in-memory implementation of driven.PageStore.
type PageStore struct {
	mu    sync.RWMutex
	pages map[string]domain.Page
}

// NewPageStore creates a new in-memory page store.
func NewPageStore() *PageStore {
	return &PageStore{pages: make(map[string]domain.Page)}
}

// Save stores or updates a page.
func (s *PageStore) Save(_ context.Context, page domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = page
	return nil
}

// Get retrieves a page by ID.
func (s *PageStore) Get(_ context.Context, id string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

// ListByProject returns all pages of a project ordered by parent then
// order index.
func (s *PageStore) ListByProject(_ context.Context, projectID string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pages []domain.Page //nolint:prealloc // size unknown until filtered
	for _, page := range s.pages {
		if page.ProjectID == projectID {
			pages = append(pages, page)
		}
	}
	sort.Slice(pages, func(i, j int) bool {
		pi, pj := parentKey(pages[i].ParentID), parentKey(pages[j].ParentID)
		if pi != pj {
			return pi < pj
		}
		return pages[i].OrderIndex < pages[j].OrderIndex
	})
	return pages, nil
}

// ListChildren returns the ordered children of a parent.
func (s *PageStore) ListChildren(_ context.Context, projectID string, parentID *string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var children []domain.Page //nolint:prealloc // size unknown until filtered
	for _, page := range s.pages {
		if page.ProjectID != projectID {
			continue
		}
		if parentKey(page.ParentID) == parentKey(parentID) {
			children = append(children, page)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].OrderIndex < children[j].OrderIndex })
	return children, nil
}

// Move re-parents a page and renumbers the destination sibling list.
func (s *PageStore) Move(_ context.Context, pageID string, newParentID *string, orderedSiblings []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[pageID]
	if !ok {
		return domain.ErrNotFound
	}
	page.ParentID = newParentID
	s.pages[pageID] = page

	s.renumberLocked(orderedSiblings)
	return nil
}

// Renumber rewrites order indexes for an ordered sibling list.
func (s *PageStore) Renumber(_ context.Context, orderedSiblings []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renumberLocked(orderedSiblings)
	return nil
}

// Delete removes a page and all its descendants.
func (s *PageStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := map[string]bool{id: true}
	// Repeated sweeps collect the whole subtree without needing an
	// ordered traversal.
	for changed := true; changed; {
		changed = false
		for pid, page := range s.pages {
			if doomed[pid] || page.ParentID == nil {
				continue
			}
			if doomed[*page.ParentID] {
				doomed[pid] = true
				changed = true
			}
		}
	}
	for pid := range doomed {
		delete(s.pages, pid)
	}
	return nil
}

func (s *PageStore) renumberLocked(orderedSiblings []string) {
	for i, id := range orderedSiblings {
		if page, ok := s.pages[id]; ok {
			page.OrderIndex = i
			s.pages[id] = page
		}
	}
}

func parentKey(parentID *string) string {
	if parentID == nil {
		return ""
	}
	return *parentID
}
