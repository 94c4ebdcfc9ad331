package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/events"
	"github.com/spec-kit/resume-review-service/internal/repository"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

// AdminService covers the admin-gated user management surface.
type AdminService struct {
	users      repository.UserRepository
	resumes    repository.ResumeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, resumes repository.ResumeRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AdminService {
	return &AdminService{users: users, resumes: resumes, dispatcher: dispatcher, logger: logger}
}

// ListUsers returns a filtered, paginated slice of users.
func (s *AdminService) ListUsers(ctx context.Context, filters repository.UserListFilters) ([]domain.User, error) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}
	if filters.Limit > 1000 {
		filters.Limit = 1000
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.users.List(ctx, filters)
}

// UpdateRole changes another user's role. Admins cannot change their own.
func (s *AdminService) UpdateRole(ctx context.Context, admin *domain.User, targetID int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if targetID == admin.ID {
		return nil, apperrors.NewValidationError("cannot change your own role", nil)
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRoleChanged, targetID, events.RoleChangedPayload{
		OldRole: target.Role,
		NewRole: role,
		AdminID: admin.ID,
	})
	return updated, nil
}

// ToggleActivation flips another user's active flag. Admins cannot
// deactivate themselves.
func (s *AdminService) ToggleActivation(ctx context.Context, admin *domain.User, targetID int64) (*domain.User, error) {
	if targetID == admin.ID {
		return nil, apperrors.NewValidationError("cannot deactivate yourself", nil)
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	updated, err := s.users.SetActive(ctx, targetID, !target.IsActive)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserActivationToggled, targetID, events.ActivationToggledPayload{
		IsActive: updated.IsActive,
		AdminID:  admin.ID,
	})
	return updated, nil
}

// Stats summarizes the system for admins.
type Stats struct {
	TotalUsers   int64
	TotalResumes int64
	UsersByRole  map[domain.Role]int64
}

// SystemStats gathers user and resume counts.
func (s *AdminService) SystemStats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalResumes, err := s.resumes.Count(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalUsers: totalUsers, TotalResumes: totalResumes, UsersByRole: byRole}, nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
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
