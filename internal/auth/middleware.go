package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/observability"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

const (
	principalKey   = "auth_principal"
	bearerTokenKey = "auth_bearer_token"
)

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	authn   *Authenticator
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(authn *Authenticator, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{authn: authn, logger: logger, metrics: metrics}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	token := parts[1]

	user, err := m.authn.Authenticate(c.Context(), token)
	if err != nil {
		return m.reject(c, err)
	}

	c.Locals(principalKey, user)
	c.Locals(bearerTokenKey, token)
	return c.Next()
}

// reject maps internal failure reasons to client-safe 401 messages. The
// reason is logged; none of the messages confirm account existence beyond
// what the presented token already proves.
func (m *AuthMiddleware) reject(c *fiber.Ctx, err error) error {
	m.logger.Info("authentication failed",
		zap.String("path", c.Path()),
		zap.String("reason", err.Error()),
	)
	m.metrics.RecordAuthFailure(err.Error())

	switch {
	case errors.Is(err, ErrTokenRevoked):
		return apperrors.NewUnauthorized("token has been revoked, please login again")
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewUnauthorized("token expired")
	case errors.Is(err, ErrUserDeactivated):
		return apperrors.NewUnauthorized("user account is deactivated")
	case errors.Is(err, ErrTokenMalformed), errors.Is(err, ErrWrongTokenKind), errors.Is(err, ErrUnknownUser):
		return apperrors.NewUnauthorized("invalid token")
	default:
		return apperrors.MapError(err)
	}
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// BearerTokenFromContext retrieves the raw token the principal presented.
func BearerTokenFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(bearerTokenKey)
	if val == nil {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
