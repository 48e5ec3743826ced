package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type CompetenceResponse struct {
	ID             uuid.UUID `json:"id"`
	CollaboratorID uuid.UUID `json:"collaborator_id"`
	TechnologyID   uuid.UUID `json:"technology_id"`
	DeclaredLevel  int       `json:"declared_level"`
	ComputedLevel  float64   `json:"computed_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromCompetence(c repository.Competence) CompetenceResponse {
	return CompetenceResponse{
		ID:             c.ID,
		CollaboratorID: c.CollaboratorID,
		TechnologyID:   c.TechnologyID,
		DeclaredLevel:  c.DeclaredLevel,
		ComputedLevel:  c.ComputedLevel,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func FromCompetences(in []repository.Competence) []CompetenceResponse {
	out := make([]CompetenceResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromCompetence(c))
	}
	return out
}
