package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-review-service/internal/api/dto"
	"github.com/spec-kit/resume-review-service/internal/auth"
	"github.com/spec-kit/resume-review-service/internal/service"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

// UsersHandler exposes registration and token lifecycle endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username, email, password required")
	}
	if req.Password != req.ConfirmPassword {
		return fiber.NewError(http.StatusBadRequest, "password doesn't match")
	}

	_, err := h.auth.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		GitHub:   req.GitHub,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"detail": "User registered successfully",
	})
}

// Login handles POST /users/login. Every failure collapses to the same
// generic message so usernames cannot be enumerated.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	user, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if isAuthFailure(err) {
			return apperrors.NewUnauthorized("invalid username or password")
		}
		return err
	}

	return c.Status(http.StatusAccepted).JSON(dto.LoginResponse{
		Detail:       "logged in successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Role:         string(user.Role),
	})
}

// Refresh handles POST /users/refresh_token. The presented refresh token
// is single use; replaying it fails as revoked.
func (h *UsersHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	pair, err := h.auth.Refresh(c.Context(), req.Token)
	if err != nil {
		return mapRefreshError(err)
	}

	return c.JSON(dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /users/logout; requires a valid access token and
// revokes exactly that token.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	token, ok := auth.BearerTokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no valid token provided")
	}

	if err := h.auth.Logout(c.Context(), token, principal.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"detail": "Successfully logged out"})
}

func isAuthFailure(err error) bool {
	return errors.Is(err, auth.ErrInvalidCredentials) ||
		errors.Is(err, auth.ErrUserDeactivated) ||
		errors.Is(err, auth.ErrUnknownUser)
}

func mapRefreshError(err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenRevoked):
		return apperrors.NewUnauthorized("token has been revoked, please login again")
	case errors.Is(err, auth.ErrTokenExpired):
		return apperrors.NewUnauthorized("token expired")
	case errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrWrongTokenKind),
		errors.Is(err, auth.ErrUnknownUser),
		errors.Is(err, auth.ErrUserDeactivated):
		return apperrors.NewUnauthorized("invalid token")
	default:
		return err
	}
}
