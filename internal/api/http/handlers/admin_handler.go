package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-review-service/internal/api/dto"
	"github.com/spec-kit/resume-review-service/internal/auth"
	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/repository"
	"github.com/spec-kit/resume-review-service/internal/service"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

// AdminHandler exposes the admin-gated user management surface. The admin
// role gate runs as route middleware before any of these handlers.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListUsers handles GET /admin/users with skip/limit/role/search queries.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filters := repository.UserListFilters{
		Offset: parseIntQuery(c, "skip", 0),
		Limit:  parseIntQuery(c, "limit", 100),
		Search: c.Query("search"),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.Role(roleStr)
		if !role.Valid() {
			return fiber.NewError(http.StatusBadRequest, "unknown role")
		}
		filters.Role = &role
	}

	users, err := h.admin.ListUsers(c.Context(), filters)
	if err != nil {
		return err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateRole handles PATCH /admin/users/:id/role.
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	admin, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.admin.UpdateRole(c.Context(), admin, targetID, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(updated)})
}

// ToggleActivation handles PATCH /admin/users/:id/activation.
func (h *AdminHandler) ToggleActivation(c *fiber.Ctx) error {
	admin, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	updated, err := h.admin.ToggleActivation(c.Context(), admin, targetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(updated)})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.SystemStats(c.Context())
	if err != nil {
		return err
	}

	byRole := make(map[string]int64, len(stats.UsersByRole))
	for role, count := range stats.UsersByRole {
		byRole[string(role)] = count
	}
	return c.JSON(dto.StatsResponse{
		TotalUsers:   stats.TotalUsers,
		TotalResumes: stats.TotalResumes,
		UsersByRole:  byRole,
	})
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultVal
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		GitHub:    user.GitHub,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
