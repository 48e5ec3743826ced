package handler

import (
	"bytes"
	"errors"
	"strings"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ImportHandler struct {
	uc usecase.ImportUsecase
}

type cvScanRequest struct {
	Text           string     `json:"text"`
	CollaboratorID *uuid.UUID `json:"collaborator_id"`
}

func NewImportHandler(uc usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/competences/csv", h.CompetencesCSV)
	r.Post("/projects", h.Projects)
	r.Post("/cv", h.CV)
}

// CompetencesCSV takes the CSV document as the raw request body.
func (h *ImportHandler) CompetencesCSV(c fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Empty CSV body", nil, nil)
	}

	report, err := h.uc.ImportCompetencesCSV(c.Context(), bytes.NewReader(body))
	if err != nil {
		return mapImportUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "import finished", report)
}

func (h *ImportHandler) Projects(c fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Empty JSON body", nil, nil)
	}

	report, err := h.uc.ImportProjects(c.Context(), bytes.NewReader(body))
	if err != nil {
		return mapImportUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "import finished", report)
}

func (h *ImportHandler) CV(c fiber.Ctx) error {
	var req cvScanRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Text is required", nil, nil)
	}

	report, err := h.uc.ScanCV(c.Context(), req.Text, req.CollaboratorID)
	if err != nil {
		return mapImportUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "scan finished", report)
}

func mapImportUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCollaboratorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Collaborator not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Malformed payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
