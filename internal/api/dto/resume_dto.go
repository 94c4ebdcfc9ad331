package dto

import "time"

// ResumeResponse is the owner-facing projection of a resume record.
type ResumeResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpertResumeResponse adds owner identity for the expert listing.
type ExpertResumeResponse struct {
	ResumeResponse
	Username string  `json:"username"`
	Email    string  `json:"email"`
	GitHub   *string `json:"github,omitempty"`
}

// ResumeUploadResponse is returned after a successful upload.
type ResumeUploadResponse struct {
	Message string         `json:"message"`
	Resume  ResumeResponse `json:"resume"`
}
