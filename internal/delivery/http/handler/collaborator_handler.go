package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CollaboratorHandler struct {
	uc usecase.CollaboratorUsecase
}

type collaboratorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewCollaboratorHandler(uc usecase.CollaboratorUsecase) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

func (h *CollaboratorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CollaboratorHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapCollaboratorUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCollaborators(items))
}

func (h *CollaboratorHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	col, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCollaboratorUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCollaborator(col))
}

func (h *CollaboratorHandler) Create(c fiber.Ctx) error {
	var req collaboratorRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	col, err := h.uc.Create(c.Context(), usecase.CollaboratorInput{FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		return mapCollaboratorUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "collaborator created", dto.FromCollaborator(col))
}

func (h *CollaboratorHandler) Update(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req collaboratorRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	col, err := h.uc.Update(c.Context(), id, usecase.CollaboratorInput{FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		return mapCollaboratorUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "collaborator updated", dto.FromCollaborator(col))
}

func (h *CollaboratorHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapCollaboratorUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "collaborator deleted", nil)
}

func mapCollaboratorUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCollaboratorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Collaborator not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "First and last name are required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
