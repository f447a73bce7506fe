package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProjectVersion is a named snapshot of a project's page content.
//
// Lifecycle: a version starts as a mutable draft, transitions to
// published (immutable), and may later be archived. Exactly one
// version per project is current at any time; restore promotes a
// non-current version back to current by overwriting live pages
// from its snapshots.
type ProjectVersion struct {
	// ID is the unique identifier for the version.
	ID string

	// ProjectID links to the owning Project.
	ProjectID string

	// VersionNumber is the display label (e.g. "1.2.0"). Required,
	// advisory only: uniqueness and monotonicity are not enforced.
	VersionNumber string

	// Name is an optional human-readable title for the release.
	Name string

	// Notes is optional free-text release notes.
	Notes string

	// IsDraft marks a mutable, not-yet-published version.
	IsDraft bool

	// IsCurrent marks the single live version of the project.
	IsCurrent bool

	// IsArchived marks a retired version, excluded from default listings.
	IsArchived bool

	// PageCount is the number of PageVersion snapshots taken.
	PageCount int

	// CreatedBy is the user who created the version.
	CreatedBy string

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time

	// PublishedAt is when the version left draft state. Zero for drafts.
	PublishedAt time.Time
}

// Validate checks the version has the minimum required fields.
func (v *ProjectVersion) Validate() error {
	if v.ID == "" || v.ProjectID == "" || strings.TrimSpace(v.VersionNumber) == "" {
		return ErrInvalidInput
	}
	return nil
}

// CanPublish reports whether the version may transition to published.
func (v *ProjectVersion) CanPublish() error {
	if v.IsArchived {
		return ErrVersionArchived
	}
	if !v.IsDraft {
		return ErrVersionNotDraft
	}
	return nil
}

// CanArchive reports whether the version may be archived.
// Only non-current versions may be archived.
func (v *ProjectVersion) CanArchive() error {
	if v.IsCurrent {
		return ErrVersionCurrent
	}
	return nil
}

// CanDelete reports whether the version may be deleted.
// Only drafts that are not current may be deleted.
func (v *ProjectVersion) CanDelete() error {
	if v.IsCurrent {
		return ErrVersionCurrent
	}
	if !v.IsDraft {
		return ErrVersionNotDraft
	}
	return nil
}

// CanRestore reports whether the version may be restored to current.
// Only published, non-current versions qualify; a draft has never
// been current, so restoring it would publish it by the back door.
func (v *ProjectVersion) CanRestore() error {
	if v.IsCurrent {
		return ErrVersionCurrent
	}
	if v.IsDraft {
		return ErrVersionDraft
	}
	return nil
}

// PageVersion is a frozen snapshot of one page at the moment its
// parent ProjectVersion was created. Immutable after creation.
type PageVersion struct {
	// ID is the unique identifier for the snapshot.
	ID string

	// VersionID links to the owning ProjectVersion.
	VersionID string

	// PageID links to the live page this snapshots.
	PageID string

	// Title is the page title at snapshot time.
	Title string

	// Description is the page description at snapshot time.
	Description string

	// Content is the page content at snapshot time.
	Content string

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time
}

// SuggestNextVersion proposes a follow-up version number by bumping the
// minor component of a dotted numeric label ("1.2.3" -> "1.3.0").
// Purely advisory. Labels that do not parse fall back to "<label>.1",
// and an empty label suggests "1.0.0".
func SuggestNextVersion(current string) string {
	current = strings.TrimSpace(current)
	if current == "" {
		return "1.0.0"
	}

	parts := strings.Split(current, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return current + ".1"
		}
		nums[i] = n
	}

	switch len(nums) {
	case 1:
		return fmt.Sprintf("%d.1", nums[0])
	case 2:
		return fmt.Sprintf("%d.%d", nums[0], nums[1]+1)
	default:
		return fmt.Sprintf("%d.%d.0", nums[0], nums[1]+1)
	}
}
