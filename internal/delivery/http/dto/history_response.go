package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type HistoryResponse struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	TechnologyID   uuid.UUID `json:"technology_id"`
	CollaboratorID uuid.UUID `json:"collaborator_id"`
	StartDate      *string   `json:"start_date"`
	EndPeriod      *string   `json:"end_period"`
	DurationMonths *int      `json:"duration_months"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromHistory(h repository.HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:             h.ID,
		ProjectID:      h.ProjectID,
		TechnologyID:   h.TechnologyID,
		CollaboratorID: h.CollaboratorID,
		StartDate:      h.StartDate,
		EndPeriod:      h.EndPeriod,
		DurationMonths: h.DurationMonths,
		CreatedAt:      h.CreatedAt,
	}
}

func FromHistories(in []repository.HistoryEntry) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(in))
	for _, h := range in {
		out = append(out, FromHistory(h))
	}
	return out
}
