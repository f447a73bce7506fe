package domain

import "time"

// Role rank thresholds used for permission gating. Roles are an open
// enumeration loaded from storage, so authority checks compare ranks
// rather than matching hard-coded names. The seed roles sit at these
// ranks; runtime-added roles may use any rank.
const (
	RankViewer = 10
	RankEditor = 20
	RankAdmin  = 30
)

// Role is a named permission level. The role set is loaded from the
// role store at runtime so it can evolve without a code change.
type Role struct {
	// ID is the unique identifier for the role.
	ID string

	// Name is the display name (e.g. "admin", "editor", "viewer").
	Name string

	// Rank orders roles by authority. Higher rank grants more.
	Rank int

	// IsDefault marks the fallback role assigned when none is selected.
	IsDefault bool
}

// CanEdit reports whether the role may mutate pages and versions.
func (r Role) CanEdit() bool { return r.Rank >= RankEditor }

// CanAdminister reports whether the role may manage membership
// and project settings.
func (r Role) CanAdminister() bool { return r.Rank >= RankAdmin }

// DefaultRole picks the fallback role from a fetched set: the one
// flagged default, else the first fetched. Returns false when the
// set is empty.
func DefaultRole(roles []Role) (Role, bool) {
	if len(roles) == 0 {
		return Role{}, false
	}
	for _, r := range roles {
		if r.IsDefault {
			return r, true
		}
	}
	return roles[0], true
}

// HighestRole returns the highest-rank role from a fetched set.
// Used to grant the creator's membership at project creation.
func HighestRole(roles []Role) (Role, bool) {
	if len(roles) == 0 {
		return Role{}, false
	}
	best := roles[0]
	for _, r := range roles[1:] {
		if r.Rank > best.Rank {
			best = r
		}
	}
	return best, true
}

// ProjectMember associates a user with a project and a permission level.
// Exactly one membership exists per (project, user) pair.
type ProjectMember struct {
	// ProjectID links to the Project.
	ProjectID string

	// UserID links to the UserProfile.
	UserID string

	// RoleID links to the member's Role.
	RoleID string

	// CreatedAt is when the membership was granted.
	CreatedAt time.Time

	// UpdatedAt is when the role was last changed.
	UpdatedAt time.Time
}

// Validate checks the membership has the minimum required fields.
func (m *ProjectMember) Validate() error {
	if m.ProjectID == "" || m.UserID == "" || m.RoleID == "" {
		return ErrInvalidInput
	}
	return nil
}
