package repository

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var ErrTechnologyNotFound = errors.New("technology not found")

type Technology struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TechnologyRepository interface {
	FindAll(ctx context.Context) ([]Technology, error)
	FindByID(ctx context.Context, id uuid.UUID) (Technology, error)
	FindByName(ctx context.Context, name string) (Technology, error)
	Create(ctx context.Context, name string) (Technology, error)
	Update(ctx context.Context, id uuid.UUID, name string) (Technology, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresTechnologyRepository struct {
	db database.DB
}

func NewPostgresTechnologyRepository(db database.DB) *PostgresTechnologyRepository {
	return &PostgresTechnologyRepository{db: db}
}

func (r *PostgresTechnologyRepository) FindAll(ctx context.Context) ([]Technology, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM technologies ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Technology, 0)
	for rows.Next() {
		var t Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTechnologyRepository) FindByID(ctx context.Context, id uuid.UUID) (Technology, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM technologies WHERE id = $1`, id,
	)
	var t Technology
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Technology{}, ErrTechnologyNotFound
		}
		return Technology{}, err
	}
	return t, nil
}

func (r *PostgresTechnologyRepository) FindByName(ctx context.Context, name string) (Technology, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM technologies WHERE name = $1`, name,
	)
	var t Technology
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Technology{}, ErrTechnologyNotFound
		}
		return Technology{}, err
	}
	return t, nil
}

func (r *PostgresTechnologyRepository) Create(ctx context.Context, name string) (Technology, error) {
	t := Technology{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	t.UpdatedAt = t.CreatedAt

	_, err := r.db.Exec(ctx,
		`INSERT INTO technologies (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return Technology{}, err
	}
	return t, nil
}

func (r *PostgresTechnologyRepository) Update(ctx context.Context, id uuid.UUID, name string) (Technology, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE technologies SET name = $1, updated_at = $2 WHERE id = $3`,
		name, time.Now().UTC(), id,
	)
	if err != nil {
		return Technology{}, err
	}
	if affected == 0 {
		return Technology{}, ErrTechnologyNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresTechnologyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTechnologyNotFound
	}
	return nil
}
