package handler

import (
	"errors"
	"strings"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompetenceHandler struct {
	uc usecase.CompetenceUsecase
}

type createCompetenceRequest struct {
	CollaboratorID uuid.UUID `json:"collaborator_id"`
	TechnologyID   uuid.UUID `json:"technology_id"`
	DeclaredLevel  int       `json:"declared_level"`
}

type updateLevelRequest struct {
	DeclaredLevel int `json:"declared_level"`
}

func NewCompetenceHandler(uc usecase.CompetenceUsecase) *CompetenceHandler {
	return &CompetenceHandler{uc: uc}
}

func (h *CompetenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id/level", h.UpdateLevel)
	r.Delete("/:id", h.Delete)
}

// List optionally narrows by collaborator_id or technology_id.
func (h *CompetenceHandler) List(c fiber.Ctx) error {
	if raw := strings.TrimSpace(c.Query("collaborator_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid collaborator_id", nil, err)
		}
		items, err := h.uc.ListByCollaborator(c.Context(), id)
		if err != nil {
			return mapCompetenceUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompetences(items))
	}

	if raw := strings.TrimSpace(c.Query("technology_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid technology_id", nil, err)
		}
		items, err := h.uc.ListByTechnology(c.Context(), id)
		if err != nil {
			return mapCompetenceUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompetences(items))
	}

	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapCompetenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompetences(items))
}

func (h *CompetenceHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	comp, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCompetenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompetence(comp))
}

func (h *CompetenceHandler) Create(c fiber.Ctx) error {
	var req createCompetenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	comp, err := h.uc.Create(c.Context(), usecase.CompetenceInput{
		CollaboratorID: req.CollaboratorID,
		TechnologyID:   req.TechnologyID,
		DeclaredLevel:  req.DeclaredLevel,
	})
	if err != nil {
		return mapCompetenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "competence created", dto.FromCompetence(comp))
}

func (h *CompetenceHandler) UpdateLevel(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateLevelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	comp, err := h.uc.UpdateDeclaredLevel(c.Context(), id, req.DeclaredLevel)
	if err != nil {
		return mapCompetenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "competence updated", dto.FromCompetence(comp))
}

func (h *CompetenceHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapCompetenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "competence deleted", nil)
}

func mapCompetenceUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCompetenceNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Competence not found", nil, err)
	case errors.Is(err, usecase.ErrCollaboratorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Collaborator not found", nil, err)
	case errors.Is(err, usecase.ErrTechnologyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Technology not found", nil, err)
	case errors.Is(err, usecase.ErrCompetenceExists):
		return middleware.NewAppError(fiber.StatusConflict, "Competence already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidLevel):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Declared level must be between 1 and 5", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
