package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/config"
	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/events"
	"github.com/spec-kit/resume-review-service/internal/repository"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

const pdfMimeType = "application/pdf"

// ResumeService stores resume files on disk and their metadata in Postgres.
type ResumeService struct {
	resumes    repository.ResumeRepository
	storage    config.StorageConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewResumeService builds the service.
func NewResumeService(resumes repository.ResumeRepository, storage config.StorageConfig, dispatcher events.Dispatcher, logger *zap.Logger) *ResumeService {
	return &ResumeService{resumes: resumes, storage: storage, dispatcher: dispatcher, logger: logger}
}

// Upload streams a PDF to disk under a generated name and records its
// metadata. Oversized or non-PDF uploads are rejected without leaving a
// file behind.
func (s *ResumeService) Upload(ctx context.Context, user *domain.User, fileName, contentType string, body io.Reader) (*domain.Resume, error) {
	if contentType != pdfMimeType {
		return nil, apperrors.NewValidationError("only PDF files are allowed", nil)
	}

	if err := os.MkdirAll(s.storage.ResumeDir, 0o755); err != nil {
		return nil, err
	}

	storedName := fmt.Sprintf("%d_%s%s", user.ID, uuid.NewString(), filepath.Ext(fileName))
	storedPath := filepath.Join(s.storage.ResumeDir, storedName)

	out, err := os.Create(storedPath)
	if err != nil {
		return nil, err
	}

	// Copy one byte past the cap so an exactly-at-limit file still passes.
	written, err := io.Copy(out, io.LimitReader(body, s.storage.MaxUploadBytes+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}
	if written > s.storage.MaxUploadBytes {
		_ = os.Remove(storedPath)
		return nil, apperrors.NewValidationError("file size too large, maximum 10MB allowed", nil)
	}

	resume := &domain.Resume{
		UserID:     user.ID,
		StoredPath: storedPath,
		FileName:   fileName,
		FileSize:   written,
		MimeType:   contentType,
	}
	if err := s.resumes.Create(ctx, resume); err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}

	s.publish(ctx, events.EventResumeUploaded, user.ID, events.ResumeUploadedPayload{
		ResumeID: resume.ID,
		FileName: resume.FileName,
		FileSize: resume.FileSize,
	})
	return resume, nil
}

// Get returns the resume if the caller may access it: owners always,
// experts and admins for any resume.
func (s *ResumeService) Get(ctx context.Context, user *domain.User, resumeID int64) (*domain.Resume, error) {
	resume, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resume", nil)
		}
		return nil, err
	}

	if !user.Role.CanReview() && resume.UserID != user.ID {
		return nil, apperrors.NewForbidden("not authorized to access this resume")
	}

	if _, err := os.Stat(resume.StoredPath); err != nil {
		return nil, apperrors.NewNotFound("resume file", nil)
	}
	return resume, nil
}

// Mine lists the caller's own resumes.
func (s *ResumeService) Mine(ctx context.Context, userID int64) ([]domain.Resume, error) {
	return s.resumes.ListByUser(ctx, userID)
}

// AllWithOwners lists every resume joined with its owner's identity, for
// the expert review surface.
func (s *ResumeService) AllWithOwners(ctx context.Context) ([]domain.ResumeWithOwner, error) {
	return s.resumes.ListAllWithOwner(ctx)
}

// Delete removes the caller's own resume, file and row both.
func (s *ResumeService) Delete(ctx context.Context, user *domain.User, resumeID int64) error {
	resume, err := s.resumes.Delete(ctx, resumeID, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("resume", nil)
		}
		return err
	}

	if err := os.Remove(resume.StoredPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove resume file", zap.String("path", resume.StoredPath), zap.Error(err))
	}

	s.publish(ctx, events.EventResumeDeleted, user.ID, events.ResumeDeletedPayload{ResumeID: resumeID})
	return nil
}

func (s *ResumeService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
