package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RelationHandler struct {
	uc usecase.RelationUsecase
}

type technologyTypeLinkRequest struct {
	TechnologyID uuid.UUID `json:"technology_id"`
	TypeID       uuid.UUID `json:"type_id"`
}

type projectTechnologyLinkRequest struct {
	ProjectID    uuid.UUID `json:"project_id"`
	TechnologyID uuid.UUID `json:"technology_id"`
}

type projectCollaboratorLinkRequest struct {
	ProjectID      uuid.UUID `json:"project_id"`
	CollaboratorID uuid.UUID `json:"collaborator_id"`
}

func NewRelationHandler(uc usecase.RelationUsecase) *RelationHandler {
	return &RelationHandler{uc: uc}
}

func (h *RelationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/technology-types", h.ListTechnologyTypes)
	r.Post("/technology-types", h.LinkTechnologyType)
	r.Delete("/technology-types", h.UnlinkTechnologyType)

	r.Get("/project-technologies", h.ListProjectTechnologies)
	r.Post("/project-technologies", h.LinkProjectTechnology)
	r.Delete("/project-technologies", h.UnlinkProjectTechnology)

	r.Get("/project-collaborators", h.ListProjectCollaborators)
	r.Post("/project-collaborators", h.LinkProjectCollaborator)
	r.Delete("/project-collaborators", h.UnlinkProjectCollaborator)
}

func (h *RelationHandler) ListTechnologyTypes(c fiber.Ctx) error {
	links, err := h.uc.ListTechnologyTypes(c.Context())
	if err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTechnologyTypeLinks(links))
}

func (h *RelationHandler) LinkTechnologyType(c fiber.Ctx) error {
	var req technologyTypeLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.LinkTechnologyType(c.Context(), req.TechnologyID, req.TypeID); err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "linked", nil)
}

func (h *RelationHandler) UnlinkTechnologyType(c fiber.Ctx) error {
	var req technologyTypeLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.UnlinkTechnologyType(c.Context(), req.TechnologyID, req.TypeID); err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "unlinked", nil)
}

func (h *RelationHandler) ListProjectTechnologies(c fiber.Ctx) error {
	links, err := h.uc.ListProjectTechnologies(c.Context())
	if err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProjectTechnologyLinks(links))
}

func (h *RelationHandler) LinkProjectTechnology(c fiber.Ctx) error {
	var req projectTechnologyLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.LinkProjectTechnology(c.Context(), req.ProjectID, req.TechnologyID); err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "linked", nil)
}

func (h *RelationHandler) UnlinkProjectTechnology(c fiber.Ctx) error {
	var req projectTechnologyLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.UnlinkProjectTechnology(c.Context(), req.ProjectID, req.TechnologyID); err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "unlinked", nil)
}

func (h *RelationHandler) ListProjectCollaborators(c fiber.Ctx) error {
	links, err := h.uc.ListProjectCollaborators(c.Context())
	if err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProjectCollaboratorLinks(links))
}

func (h *RelationHandler) LinkProjectCollaborator(c fiber.Ctx) error {
	var req projectCollaboratorLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.LinkProjectCollaborator(c.Context(), req.ProjectID, req.CollaboratorID); err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "linked", nil)
}

func (h *RelationHandler) UnlinkProjectCollaborator(c fiber.Ctx) error {
	var req projectCollaboratorLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.UnlinkProjectCollaborator(c.Context(), req.ProjectID, req.CollaboratorID); err != nil {
		return mapRelationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "unlinked", nil)
}

func mapRelationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrRelationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Relation not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown entity in relation", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
