package repository

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var ErrTypeNotFound = errors.New("technology type not found")

// TechnologyType classifies technologies (language, framework, database...).
type TechnologyType struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TypeRepository interface {
	FindAll(ctx context.Context) ([]TechnologyType, error)
	FindByID(ctx context.Context, id uuid.UUID) (TechnologyType, error)
	Create(ctx context.Context, name string) (TechnologyType, error)
	Update(ctx context.Context, id uuid.UUID, name string) (TechnologyType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresTypeRepository struct {
	db database.DB
}

func NewPostgresTypeRepository(db database.DB) *PostgresTypeRepository {
	return &PostgresTypeRepository{db: db}
}

func (r *PostgresTypeRepository) FindAll(ctx context.Context) ([]TechnologyType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM technology_types ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TechnologyType, 0)
	for rows.Next() {
		var t TechnologyType
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

func (r *PostgresTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (TechnologyType, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM technology_types WHERE id = $1`, id,
	)
	var t TechnologyType
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isNoRows(err) {
			return TechnologyType{}, ErrTypeNotFound
		}
		return TechnologyType{}, err
	}
	return t, nil
}

func (r *PostgresTypeRepository) Create(ctx context.Context, name string) (TechnologyType, error) {
	t := TechnologyType{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	t.UpdatedAt = t.CreatedAt

	_, err := r.db.Exec(ctx,
		`INSERT INTO technology_types (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return TechnologyType{}, err
	}
	return t, nil
}

func (r *PostgresTypeRepository) Update(ctx context.Context, id uuid.UUID, name string) (TechnologyType, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE technology_types SET name = $1, updated_at = $2 WHERE id = $3`,
		name, time.Now().UTC(), id,
	)
	if err != nil {
		return TechnologyType{}, err
	}
	if affected == 0 {
		return TechnologyType{}, ErrTypeNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM technology_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTypeNotFound
	}
	return nil
}
