package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type TechnologyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromTechnology(t repository.Technology) TechnologyResponse {
	return TechnologyResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func FromTechnologies(in []repository.Technology) []TechnologyResponse {
	out := make([]TechnologyResponse, 0, len(in))
	for _, t := range in {
		out = append(out, FromTechnology(t))
	}
	return out
}

type TypeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromType(t repository.TechnologyType) TypeResponse {
	return TypeResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func FromTypes(in []repository.TechnologyType) []TypeResponse {
	out := make([]TypeResponse, 0, len(in))
	for _, t := range in {
		out = append(out, FromType(t))
	}
	return out
}
