package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScoringHandler struct {
	uc usecase.ScoringUsecase
}

func NewScoringHandler(uc usecase.ScoringUsecase) *ScoringHandler {
	return &ScoringHandler{uc: uc}
}

func (h *ScoringHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/recompute", h.RecomputeAll)
	r.Post("/recompute/collaborators/:id", h.RecomputeCollaborator)
	r.Post("/recompute/competences/:id", h.RecomputeCompetence)
	r.Get("/parameters", h.Parameters)
}

func (h *ScoringHandler) RecomputeAll(c fiber.Ctx) error {
	res, err := h.uc.RecomputeAll(c.Context())
	if err != nil {
		return mapScoringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "rescore finished", recomputeResponse(res))
}

func (h *ScoringHandler) RecomputeCollaborator(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.RecomputeCollaborator(c.Context(), id)
	if err != nil {
		return mapScoringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "rescore finished", recomputeResponse(res))
}

func (h *ScoringHandler) RecomputeCompetence(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	comp, err := h.uc.RecomputeCompetence(c.Context(), id)
	if err != nil {
		return mapScoringUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "rescore finished", dto.FromCompetence(comp))
}

func (h *ScoringHandler) Parameters(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Parameters())
}

func recomputeResponse(res usecase.RecomputeResult) map[string]any {
	return map[string]any{
		"updated": res.Updated,
		"errors":  res.Errors,
	}
}

func mapScoringUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCompetenceNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Competence not found", nil, err)
	case errors.Is(err, usecase.ErrNoCompetences):
		return middleware.NewAppError(fiber.StatusNotFound, "No competences found for this collaborator", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
