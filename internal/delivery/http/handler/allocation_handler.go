package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AllocationHandler struct {
	uc usecase.AllocationUsecase
}

type suggestRequest struct {
	Technologies []string `json:"technologies"`
	TeamSize     int      `json:"team_size"`
}

func NewAllocationHandler(uc usecase.AllocationUsecase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

func (h *AllocationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/suggest", h.Suggest)
	r.Get("/capacity", h.Capacity)
	r.Get("/gaps", h.Gaps)
}

func (h *AllocationHandler) Suggest(c fiber.Ctx) error {
	var req suggestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	report, err := h.uc.Suggest(c.Context(), usecase.SuggestInput{
		Technologies: req.Technologies,
		TeamSize:     req.TeamSize,
	})
	if err != nil {
		return mapAllocationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *AllocationHandler) Capacity(c fiber.Ctx) error {
	report, err := h.uc.Capacity(c.Context(), queryFloat(c, "min_level", usecase.DefaultCapacityFloor))
	if err != nil {
		return mapAllocationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *AllocationHandler) Gaps(c fiber.Ctx) error {
	report, err := h.uc.Gaps(c.Context(), queryInt(c, "expert_threshold", usecase.DefaultExpertThreshold))
	if err != nil {
		return mapAllocationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func mapAllocationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "At least one technology is required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
