package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/auth"
	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/events"
	"github.com/spec-kit/resume-review-service/internal/repository"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

// undecodableRevocationTTL bounds ledger entries for tokens that cannot be
// decoded; 24h covers the longest default token lifetime.
const undecodableRevocationTTL = 24 * time.Hour

// AuthService coordinates registration, login, refresh rotation and logout.
type AuthService struct {
	users      repository.UserRepository
	ledger     *RevocationLedger
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Ledger     *RevocationLedger
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.Users,
		ledger:     deps.Ledger,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: deps.BcryptCost,
	}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string
	Email    string
	GitHub   *string
	Password string
	Role     string
}

// Register creates a new account. Username and email are normalized to
// lowercase; self-registration may pick candidate or expert, never admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	role := domain.RoleCandidate
	switch in.Role {
	case "", string(domain.RoleCandidate):
	case string(domain.RoleExpert):
		role = domain.RoleExpert
	default:
		return nil, apperrors.NewValidationError("role must be either 'candidate' or 'expert'", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.ToLower(in.Username),
		Email:        strings.ToLower(in.Email),
		GitHub:       in.GitHub,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username or email already exists", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Username: user.Username,
		Role:     user.Role,
	})
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. A missing
// username and a wrong password are indistinguishable to the caller; prior
// token pairs stay valid, concurrent sessions are allowed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, auth.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, auth.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, auth.ErrUserDeactivated
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, nil)
	return user, pair, nil
}

// Refresh redeems a refresh token for a new pair. The presented token is
// revoked atomically with redemption: of two concurrent calls with the same
// token, at most one succeeds, the other observes it as revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	revoked, err := s.ledger.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrTokenRevoked
	}

	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != domain.TokenKindRefresh {
		return nil, auth.ErrWrongTokenKind
	}

	// Re-verify the principal so deactivation cuts off refresh tokens too.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUnknownUser
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, auth.ErrUserDeactivated
	}

	expiresAt := time.Now().Add(undecodableRevocationTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	first, err := s.ledger.Revoke(ctx, refreshToken, claims.UserID, expiresAt)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, auth.ErrTokenRevoked
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenRefreshed, user.ID, nil)
	return pair, nil
}

// Logout revokes exactly the presented access token. Other outstanding
// tokens for the same user keep working.
func (s *AuthService) Logout(ctx context.Context, token string, userID int64) error {
	expiresAt := time.Now().Add(undecodableRevocationTTL)
	if claims, err := s.tokens.Decode(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if _, err := s.ledger.Revoke(ctx, token, userID, expiresAt); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserLoggedOut, userID, nil)
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
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
