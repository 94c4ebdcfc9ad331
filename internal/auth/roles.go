package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

// RequireExpert passes principals with role expert or admin. The principal
// is already authenticated, so failure here is 403, not 401.
func RequireExpert() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.CanReview() {
			return apperrors.NewForbidden("not enough permissions, expert role required")
		}
		return c.Next()
	}
}

// RequireAdmin passes principals with role admin only.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.IsAdmin() {
			return apperrors.NewForbidden("not enough permissions, admin role required")
		}
		return c.Next()
	}
}
