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

type HistoryHandler struct {
	uc usecase.HistoryUsecase
}

type historyRequest struct {
	ProjectID      uuid.UUID `json:"project_id"`
	TechnologyID   uuid.UUID `json:"technology_id"`
	CollaboratorID uuid.UUID `json:"collaborator_id"`
	StartDate      *string   `json:"start_date"`
	EndPeriod      *string   `json:"end_period"`
	DurationMonths *int      `json:"duration_months"`
}

func NewHistoryHandler(uc usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

func (h *HistoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *HistoryHandler) List(c fiber.Ctx) error {
	if raw := strings.TrimSpace(c.Query("project_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid project_id", nil, err)
		}
		items, err := h.uc.ListByProject(c.Context(), id)
		if err != nil {
			return mapHistoryUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHistories(items))
	}

	if raw := strings.TrimSpace(c.Query("collaborator_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid collaborator_id", nil, err)
		}
		items, err := h.uc.ListByCollaborator(c.Context(), id)
		if err != nil {
			return mapHistoryUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHistories(items))
	}

	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapHistoryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHistories(items))
}

func (h *HistoryHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	entry, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapHistoryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHistory(entry))
}

func (h *HistoryHandler) Create(c fiber.Ctx) error {
	var req historyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entry, err := h.uc.Create(c.Context(), historyInputFromRequest(req))
	if err != nil {
		return mapHistoryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "history entry created", dto.FromHistory(entry))
}

func (h *HistoryHandler) Update(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req historyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entry, err := h.uc.Update(c.Context(), id, historyInputFromRequest(req))
	if err != nil {
		return mapHistoryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "history entry updated", dto.FromHistory(entry))
}

func (h *HistoryHandler) Delete(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapHistoryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "history entry deleted", nil)
}

func historyInputFromRequest(req historyRequest) usecase.HistoryInput {
	return usecase.HistoryInput{
		ProjectID:      req.ProjectID,
		TechnologyID:   req.TechnologyID,
		CollaboratorID: req.CollaboratorID,
		StartDate:      req.StartDate,
		EndPeriod:      req.EndPeriod,
		DurationMonths: req.DurationMonths,
	}
}

func mapHistoryUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrHistoryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "History entry not found", nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrTechnologyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Technology not found", nil, err)
	case errors.Is(err, usecase.ErrCollaboratorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Collaborator not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidEndPeriod):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "End period is not a recognized date", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
