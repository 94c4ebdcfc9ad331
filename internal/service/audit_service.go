package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/events"
)

// AuditService records security-relevant domain events to the structured
// log. It is a passive subscriber; failures never affect request handling.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService builds the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

var auditedEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventUserLoggedIn,
	events.EventTokenRefreshed,
	events.EventUserLoggedOut,
	events.EventUserRoleChanged,
	events.EventUserActivationToggled,
	events.EventResumeUploaded,
	events.EventResumeDeleted,
}

// RegisterHandlers subscribes the audit log to every event type.
func (s *AuditService) RegisterHandlers() {
	for _, eventType := range auditedEvents {
		s.dispatcher.Subscribe(eventType, s.record)
	}
}

func (s *AuditService) record(_ context.Context, event events.Event) error {
	s.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.UserID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
