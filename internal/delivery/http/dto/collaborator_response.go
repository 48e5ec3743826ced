package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type CollaboratorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCollaborator(c repository.Collaborator) CollaboratorResponse {
	return CollaboratorResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromCollaborators(in []repository.Collaborator) []CollaboratorResponse {
	out := make([]CollaboratorResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromCollaborator(c))
	}
	return out
}
