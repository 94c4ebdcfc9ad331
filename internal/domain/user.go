package domain

import "time"

// Role enumerates user roles in ascending order of capability.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleExpert    Role = "expert"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known members.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleExpert, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may access expert-gated resources.
func (r Role) CanReview() bool {
	return r == RoleExpert || r == RoleAdmin
}

// IsAdmin reports whether the role may access admin-gated resources.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is the domain model for registered accounts. Username and email are
// stored lowercase; uniqueness is enforced by the database.
type User struct {
	ID           int64
	Username     string
	Email        string
	GitHub       *string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
