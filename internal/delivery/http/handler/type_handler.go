package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TypeHandler struct {
	uc usecase.TypeUsecase
}

func NewTypeHandler(uc usecase.TypeUsecase) *TypeHandler {
	return &TypeHandler{uc: uc}
}

func (h *TypeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *TypeHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapTypeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTypes(items))
}

func (h *TypeHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	t, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapTypeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromType(t))
}

func (h *TypeHandler) Create(c fiber.Ctx) error {
	var req nameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		return mapTypeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "type created", dto.FromType(t))
}

func (h *TypeHandler) Update(c fiber.Ctx) error {
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
		return mapTypeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "type updated", dto.FromType(t))
}

func (h *TypeHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapTypeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "type deleted", nil)
}

func mapTypeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrTypeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Type not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Name is required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
