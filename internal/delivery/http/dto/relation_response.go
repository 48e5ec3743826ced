package dto

import (
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type TechnologyTypeLinkResponse struct {
	TechnologyID uuid.UUID `json:"technology_id"`
	TypeID       uuid.UUID `json:"type_id"`
}

func FromTechnologyTypeLinks(in []repository.TechnologyTypeLink) []TechnologyTypeLinkResponse {
	out := make([]TechnologyTypeLinkResponse, 0, len(in))
	for _, l := range in {
		out = append(out, TechnologyTypeLinkResponse{TechnologyID: l.TechnologyID, TypeID: l.TypeID})
	}
	return out
}

type ProjectTechnologyLinkResponse struct {
	ProjectID    uuid.UUID `json:"project_id"`
	TechnologyID uuid.UUID `json:"technology_id"`
}

func FromProjectTechnologyLinks(in []repository.ProjectTechnologyLink) []ProjectTechnologyLinkResponse {
	out := make([]ProjectTechnologyLinkResponse, 0, len(in))
	for _, l := range in {
		out = append(out, ProjectTechnologyLinkResponse{ProjectID: l.ProjectID, TechnologyID: l.TechnologyID})
	}
	return out
}

type ProjectCollaboratorLinkResponse struct {
	ProjectID      uuid.UUID `json:"project_id"`
	CollaboratorID uuid.UUID `json:"collaborator_id"`
}

func FromProjectCollaboratorLinks(in []repository.ProjectCollaboratorLink) []ProjectCollaboratorLinkResponse {
	out := make([]ProjectCollaboratorLinkResponse, 0, len(in))
	for _, l := range in {
		out = append(out, ProjectCollaboratorLinkResponse{ProjectID: l.ProjectID, CollaboratorID: l.CollaboratorID})
	}
	return out
}
