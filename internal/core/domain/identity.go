package domain

import "strings"

// Role is the access tier that decides which dashboard sections and
// mutation controls a user sees.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleContributor Role = "Contributor"
	RoleNone        Role = "NoRole"
)

// ParseRole maps the role-lookup payload to a Role. Anything other than an
// exact known role resolves to RoleNone.
func ParseRole(s string) Role {
	switch Role(strings.TrimSpace(s)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleContributor:
		return RoleContributor
	default:
		return RoleNone
	}
}

// Title is the greeting used on the dashboard overview.
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleContributor:
		return "Contributor"
	default:
		return "User"
	}
}

// Identity is the authenticated user's locally cached profile plus the
// server-issued identifier.
type Identity struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Valid reports whether the identity is complete enough to render
// protected views.
func (i Identity) Valid() bool {
	return strings.TrimSpace(i.UserID) != ""
}

// DisplayName returns the first name, or fallback when none is cached.
func (i Identity) DisplayName(fallback string) string {
	if name := strings.TrimSpace(i.FirstName); name != "" {
		return name
	}
	return fallback
}
