package events

import (
	"time"

	"github.com/spec-kit/resume-review-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user_registered"
	EventUserLoggedIn          EventType = "user_logged_in"
	EventTokenRefreshed        EventType = "token_refreshed"
	EventUserLoggedOut         EventType = "user_logged_out"
	EventUserRoleChanged       EventType = "user_role_changed"
	EventUserActivationToggled EventType = "user_activation_toggled"
	EventResumeUploaded        EventType = "resume_uploaded"
	EventResumeDeleted         EventType = "resume_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
	AdminID int64       `json:"admin_id"`
}

// ActivationToggledPayload payload.
type ActivationToggledPayload struct {
	IsActive bool  `json:"is_active"`
	AdminID  int64 `json:"admin_id"`
}

// ResumeUploadedPayload payload.
type ResumeUploadedPayload struct {
	ResumeID int64  `json:"resume_id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}

// ResumeDeletedPayload payload.
type ResumeDeletedPayload struct {
	ResumeID int64 `json:"resume_id"`
}
