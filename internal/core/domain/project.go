package domain

import (
	"regexp"
	"strings"
	"time"
)

// Project is the organisational root for documentation content.
// Pages, versions and memberships all hang off a project.
type Project struct {
	// ID is the unique identifier for the project.
	ID string

	// Name is the human-readable project name.
	Name string

	// Slug is the URL-safe identifier derived from Name.
	// Unique across the system.
	Slug string

	// Description is an optional free-text summary.
	Description string

	// IsPublic controls whether published content is readable
	// without authentication.
	IsPublic bool

	// LogoPath is a blob store path for the project logo. Optional.
	LogoPath string

	// CreatedBy is the user who created the project. The creator is
	// always granted the highest-rank membership at creation time.
	CreatedBy string

	// CreatedAt is when the project was created.
	CreatedAt time.Time

	// UpdatedAt is when the project was last updated.
	UpdatedAt time.Time
}

// Validate checks the project has the minimum required fields.
func (p *Project) Validate() error {
	if p.ID == "" || p.Name == "" || p.Slug == "" {
		return ErrInvalidInput
	}
	return nil
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives a URL-safe slug from a name: lower-case, strip
// non-word characters, collapse whitespace runs to single hyphens.
// The transform is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
