package models

import "slices"

// Role is a member's role inside a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Membership is one entry of a group's roster.
type Membership struct {
	UserID   string
	Role     Role
	JoinedAt int64
}

// Group represents a named roster of users who share expenses.
// The creator is always a member with the admin role.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	// Description is optional free text.
	Description string

	// CreatedBy is the user ID of the creator.
	CreatedBy string

	// Members is the ordered roster. Append-only.
	Members []Membership

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is on the roster.
func (g *Group) HasMember(userID string) bool {
	return slices.ContainsFunc(g.Members, func(m Membership) bool { return m.UserID == userID })
}

// MemberIDs returns the roster's user IDs in roster order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
