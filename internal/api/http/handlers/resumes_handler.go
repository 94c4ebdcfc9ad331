package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-review-service/internal/api/dto"
	"github.com/spec-kit/resume-review-service/internal/auth"
	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/service"
	apperrors "github.com/spec-kit/resume-review-service/pkg/util"
)

// ResumesHandler exposes resume upload, download and listing endpoints.
type ResumesHandler struct {
	resumes *service.ResumeService
}

// NewResumesHandler constructs handler.
func NewResumesHandler(resumeService *service.ResumeService) *ResumesHandler {
	return &ResumesHandler{resumes: resumeService}
}

// Upload handles POST /resumes/upload (multipart field "resume").
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "resume file required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unable to read resume file")
	}
	defer file.Close()

	resume, err := h.resumes.Upload(c.Context(), principal, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return err
	}

	return c.JSON(dto.ResumeUploadResponse{
		Message: "Resume uploaded successfully",
		Resume:  resumeResponse(resume),
	})
}

// Download handles GET /resumes/download/:id.
func (h *ResumesHandler) Download(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	resumeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	resume, err := h.resumes.Get(c.Context(), principal, resumeID)
	if err != nil {
		return err
	}
	return c.Download(resume.StoredPath, resume.FileName)
}

// Mine handles GET /resumes/mine.
func (h *ResumesHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	resumes, err := h.resumes.Mine(c.Context(), principal.ID)
	if err != nil {
		return err
	}

	resp := make([]dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		resp = append(resp, resumeResponse(&resumes[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ExpertAll handles GET /resumes/expert/all; the expert role gate runs
// before this handler.
func (h *ResumesHandler) ExpertAll(c *fiber.Ctx) error {
	resumes, err := h.resumes.AllWithOwners(c.Context())
	if err != nil {
		return err
	}

	resp := make([]dto.ExpertResumeResponse, 0, len(resumes))
	for i := range resumes {
		resp = append(resp, dto.ExpertResumeResponse{
			ResumeResponse: resumeResponse(&resumes[i].Resume),
			Username:       resumes[i].Username,
			Email:          resumes[i].Email,
			GitHub:         resumes[i].GitHub,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Delete handles DELETE /resumes/:id (owner only).
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	resumeID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.resumes.Delete(c.Context(), principal, resumeID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"detail": "Resume deleted successfully"})
}

func resumeResponse(resume *domain.Resume) dto.ResumeResponse {
	return dto.ResumeResponse{
		ID:        resume.ID,
		UserID:    resume.UserID,
		FileName:  resume.FileName,
		FileSize:  resume.FileSize,
		MimeType:  resume.MimeType,
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	}
}
