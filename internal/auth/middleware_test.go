package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/observability"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

func newTestApp(t *testing.T, users ...*domain.User) (*fiber.App, *Authenticator) {
	t.Helper()

	authn, _ := newTestAuthenticator(users...)
	middleware := NewAuthMiddleware(authn, zap.NewNop(), observability.NewMetrics())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})
	protected := app.Group("", middleware.Handle)
	protected.Get("/me", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"id": principal.ID})
	})
	protected.Get("/expert", RequireExpert(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	protected.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app, authn
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	candidate := &domain.User{ID: 1, Username: "cand", Role: domain.RoleCandidate, IsActive: true}
	expert := &domain.User{ID: 2, Username: "exp", Role: domain.RoleExpert, IsActive: true}
	admin := &domain.User{ID: 3, Username: "adm", Role: domain.RoleAdmin, IsActive: true}

	app, authn := newTestApp(t, candidate, expert, admin)
	issue := func(id int64) string {
		token, _, err := authn.Tokens().Issue(id, domain.TokenKindAccess)
		require.NoError(t, err)
		return token
	}

	t.Run("missing header", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, request(t, app, "/me", ""))
	})

	t.Run("malformed header scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token reaches handler", func(t *testing.T) {
		require.Equal(t, http.StatusOK, request(t, app, "/me", issue(1)))
	})

	t.Run("role gates", func(t *testing.T) {
		cases := []struct {
			name   string
			path   string
			userID int64
			want   int
		}{
			{"candidate denied expert route", "/expert", 1, http.StatusForbidden},
			{"expert passes expert route", "/expert", 2, http.StatusOK},
			{"admin passes expert route", "/expert", 3, http.StatusOK},
			{"candidate denied admin route", "/admin", 1, http.StatusForbidden},
			{"expert denied admin route", "/admin", 2, http.StatusForbidden},
			{"admin passes admin route", "/admin", 3, http.StatusOK},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				require.Equal(t, tc.want, request(t, app, tc.path, issue(tc.userID)))
			})
		}
	})

	t.Run("refresh token rejected with 401 not 403", func(t *testing.T) {
		token, _, err := authn.Tokens().Issue(3, domain.TokenKindRefresh)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, request(t, app, "/admin", token))
	})
}
