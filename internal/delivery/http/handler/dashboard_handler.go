package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc     usecase.DashboardUsecase
	matrix usecase.MatrixUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase, matrix usecase.MatrixUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc, matrix: matrix}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/overview", h.Overview)
	r.Get("/statistics", h.Statistics)
	r.Get("/top-technologies", h.TopTechnologies)
	r.Get("/at-risk", h.AtRisk)
	r.Get("/heatmap", h.Heatmap)
	r.Get("/collaborators/:id/radar", h.Radar)
}

func (h *DashboardHandler) Overview(c fiber.Ctx) error {
	report, err := h.uc.Overview(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *DashboardHandler) Statistics(c fiber.Ctx) error {
	report, err := h.uc.Statistics(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *DashboardHandler) TopTechnologies(c fiber.Ctx) error {
	report, err := h.uc.TopTechnologies(c.Context(), queryInt(c, "limit", usecase.DefaultTopTechnologies))
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *DashboardHandler) AtRisk(c fiber.Ctx) error {
	report, err := h.uc.AtRisk(c.Context(), queryInt(c, "expert_threshold", usecase.DefaultExpertThreshold))
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *DashboardHandler) Heatmap(c fiber.Ctx) error {
	report, err := h.matrix.Heatmap(c.Context(), queryInt(c, "top", 0))
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *DashboardHandler) Radar(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	report, err := h.uc.Radar(c.Context(), id)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func mapDashboardUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCollaboratorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Collaborator not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
