package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TechnologyHandler struct {
	uc usecase.TechnologyUsecase
}

type nameRequest struct {
	Name string `json:"name"`
}

func NewTechnologyHandler(uc usecase.TechnologyUsecase) *TechnologyHandler {
	return &TechnologyHandler{uc: uc}
}

func (h *TechnologyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *TechnologyHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapTechnologyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTechnologies(items))
}

func (h *TechnologyHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	t, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapTechnologyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTechnology(t))
}

func (h *TechnologyHandler) Create(c fiber.Ctx) error {
	var req nameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		return mapTechnologyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "technology created", dto.FromTechnology(t))
}

func (h *TechnologyHandler) Update(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req nameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.Update(c.Context(), id, req.Name)
	if err != nil {
		return mapTechnologyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "technology updated", dto.FromTechnology(t))
}

func (h *TechnologyHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapTechnologyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "technology deleted", nil)
}

func mapTechnologyUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrTechnologyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Technology not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Name is required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
