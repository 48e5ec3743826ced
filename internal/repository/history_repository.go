package repository

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var ErrHistoryNotFound = errors.New("history entry not found")

// HistoryEntry records that a collaborator used a technology on a project.
// Dates stay in their raw string form here; normalization happens in the
// scoring package. Several entries may exist for the same triple and the
// scoring engine counts each of them.
type HistoryEntry struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	TechnologyID   uuid.UUID
	CollaboratorID uuid.UUID
	StartDate      *string
	EndPeriod      *string
	DurationMonths *int
	CreatedAt      time.Time
}

type HistoryRepository interface {
	FindAll(ctx context.Context) ([]HistoryEntry, error)
	FindByID(ctx context.Context, id uuid.UUID) (HistoryEntry, error)
	FindByPair(ctx context.Context, collaboratorID, technologyID uuid.UUID) ([]HistoryEntry, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]HistoryEntry, error)
	FindByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]HistoryEntry, error)
	FindByTechnology(ctx context.Context, technologyID uuid.UUID) ([]HistoryEntry, error)
	Create(ctx context.Context, h HistoryEntry) (HistoryEntry, error)
	Update(ctx context.Context, h HistoryEntry) (HistoryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresHistoryRepository struct {
	db database.DB
}

func NewPostgresHistoryRepository(db database.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

const historyColumns = `id, project_id, technology_id, collaborator_id, start_date, end_period, duration_months, created_at`

func (r *PostgresHistoryRepository) scanMany(rows database.Rows) ([]HistoryEntry, error) {
	defer rows.Close()

	out := make([]HistoryEntry, 0)
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.TechnologyID, &h.CollaboratorID, &h.StartDate, &h.EndPeriod, &h.DurationMonths, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresHistoryRepository) FindAll(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM usage_history ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (HistoryEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+historyColumns+` FROM usage_history WHERE id = $1`, id,
	)
	var h HistoryEntry
	if err := row.Scan(&h.ID, &h.ProjectID, &h.TechnologyID, &h.CollaboratorID, &h.StartDate, &h.EndPeriod, &h.DurationMonths, &h.CreatedAt); err != nil {
		if isNoRows(err) {
			return HistoryEntry{}, ErrHistoryNotFound
		}
		return HistoryEntry{}, err
	}
	return h, nil
}

// FindByPair is the scoring engine's read: every usage row for one
// (collaborator, technology) pair.
func (r *PostgresHistoryRepository) FindByPair(ctx context.Context, collaboratorID, technologyID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM usage_history WHERE collaborator_id = $1 AND technology_id = $2`,
		collaboratorID, technologyID,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresHistoryRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM usage_history WHERE project_id = $1 ORDER BY created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresHistoryRepository) FindByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM usage_history WHERE collaborator_id = $1 ORDER BY created_at ASC`,
		collaboratorID,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresHistoryRepository) FindByTechnology(ctx context.Context, technologyID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM usage_history WHERE technology_id = $1 ORDER BY created_at ASC`,
		technologyID,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresHistoryRepository) Create(ctx context.Context, h HistoryEntry) (HistoryEntry, error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO usage_history (id, project_id, technology_id, collaborator_id, start_date, end_period, duration_months, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.ProjectID, h.TechnologyID, h.CollaboratorID, h.StartDate, h.EndPeriod, h.DurationMonths, h.CreatedAt,
	)
	if err != nil {
		return HistoryEntry{}, err
	}
	return h, nil
}

func (r *PostgresHistoryRepository) Update(ctx context.Context, h HistoryEntry) (HistoryEntry, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE usage_history SET start_date = $1, end_period = $2, duration_months = $3 WHERE id = $4`,
		h.StartDate, h.EndPeriod, h.DurationMonths, h.ID,
	)
	if err != nil {
		return HistoryEntry{}, err
	}
	if affected == 0 {
		return HistoryEntry{}, ErrHistoryNotFound
	}
	return r.FindByID(ctx, h.ID)
}

func (r *PostgresHistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM usage_history WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}
