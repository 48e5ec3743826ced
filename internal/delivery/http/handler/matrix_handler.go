package handler

import (
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatrixHandler struct {
	uc usecase.MatrixUsecase
}

func NewMatrixHandler(uc usecase.MatrixUsecase) *MatrixHandler {
	return &MatrixHandler{uc: uc}
}

func (h *MatrixHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/competences", h.Matrix)
	r.Get("/competences/simple", h.Simple)
	r.Get("/competences/heatmap", h.Heatmap)
}

func (h *MatrixHandler) Matrix(c fiber.Ctx) error {
	report, err := h.uc.Matrix(c.Context(), usecase.MatrixQuery{
		Technology:   c.Query("technology"),
		Collaborator: c.Query("collaborator"),
		MinLevel:     queryFloatPtr(c, "min_level"),
	})
	if err != nil {
		return mapMatrixUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *MatrixHandler) Simple(c fiber.Ctx) error {
	report, err := h.uc.Simple(c.Context())
	if err != nil {
		return mapMatrixUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

// Heatmap covers every technology unless the top parameter narrows it.
func (h *MatrixHandler) Heatmap(c fiber.Ctx) error {
	report, err := h.uc.Heatmap(c.Context(), queryInt(c, "top", 0))
	if err != nil {
		return mapMatrixUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func mapMatrixUsecaseError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
