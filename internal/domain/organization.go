package domain

import "time"

// Organization is the top-level tenant owning projects and members.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberRole enumerates membership permission levels within an organization.
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
	MemberRoleViewer MemberRole = "VIEWER"
)

// Membership links a user to an organization with a role.
type Membership struct {
	ID             string
	OrganizationID string
	UserID         string
	Role           MemberRole
	CreatedAt      time.Time
}

// CanWrite reports whether the role allows mutating tickets.
func (m Membership) CanWrite() bool {
	return m.Role == MemberRoleAdmin || m.Role == MemberRoleMember
}
