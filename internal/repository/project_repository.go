package repository

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

// Project optionally carries a planned end period (YYYY-MM) and a planned
// duration in months.
type Project struct {
	ID             uuid.UUID
	Name           string
	EndPeriod      *string
	DurationMonths *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ProjectRepository interface {
	FindAll(ctx context.Context) ([]Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (Project, error)
	FindByName(ctx context.Context, name string) (Project, error)
	Create(ctx context.Context, name string, endPeriod *string, durationMonths *int) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) FindAll(ctx context.Context) ([]Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, end_period, duration_months, created_at, updated_at
		 FROM projects ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.EndPeriod, &p.DurationMonths, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, end_period, duration_months, created_at, updated_at
		 FROM projects WHERE id = $1`,
		id,
	)
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.EndPeriod, &p.DurationMonths, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) FindByName(ctx context.Context, name string) (Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, end_period, duration_months, created_at, updated_at
		 FROM projects WHERE name = $1`,
		name,
	)
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.EndPeriod, &p.DurationMonths, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) Create(ctx context.Context, name string, endPeriod *string, durationMonths *int) (Project, error) {
	p := Project{
		ID:             uuid.New(),
		Name:           name,
		EndPeriod:      endPeriod,
		DurationMonths: durationMonths,
		CreatedAt:      time.Now().UTC(),
	}
	p.UpdatedAt = p.CreatedAt

	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, name, end_period, duration_months, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.EndPeriod, p.DurationMonths, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) Update(ctx context.Context, p Project) (Project, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE projects SET name = $1, end_period = $2, duration_months = $3, updated_at = $4 WHERE id = $5`,
		p.Name, p.EndPeriod, p.DurationMonths, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return Project{}, err
	}
	if affected == 0 {
		return Project{}, ErrProjectNotFound
	}
	return r.FindByID(ctx, p.ID)
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
