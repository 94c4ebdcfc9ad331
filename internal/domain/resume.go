package domain

import "time"

// Resume is the metadata record for an uploaded PDF resume. The file itself
// lives on disk at StoredPath; FileName preserves the client's original name.
type Resume struct {
	ID         int64
	UserID     int64
	StoredPath string
	FileName   string
	FileSize   int64
	MimeType   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ResumeWithOwner joins a resume with its owner's public identity, used by
// the expert listing.
type ResumeWithOwner struct {
	Resume
	Username string
	Email    string
	GitHub   *string
}
