package dto

import (
	"time"

	"github.com/spec-kit/resume-review-service/internal/domain"
)

// UserResponse is the admin-facing projection of a user record.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	GitHub    *string     `json:"github,omitempty"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RoleUpdateRequest payload for PATCH role.
type RoleUpdateRequest struct {
	Role string `json:"role"`
}

// StatsResponse summarizes the system for admins.
type StatsResponse struct {
	TotalUsers   int64            `json:"total_users"`
	TotalResumes int64            `json:"total_resumes"`
	UsersByRole  map[string]int64 `json:"users_by_role"`
}
