package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCollaboratorNotFound = errors.New("collaborator not found")

type Collaborator struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CollaboratorRepository interface {
	FindAll(ctx context.Context) ([]Collaborator, error)
	FindByID(ctx context.Context, id uuid.UUID) (Collaborator, error)
	FindByName(ctx context.Context, firstName, lastName string) (Collaborator, error)
	Create(ctx context.Context, firstName, lastName string) (Collaborator, error)
	Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (Collaborator, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCollaboratorRepository struct {
	db database.DB
}

func NewPostgresCollaboratorRepository(db database.DB) *PostgresCollaboratorRepository {
	return &PostgresCollaboratorRepository{db: db}
}

func (r *PostgresCollaboratorRepository) FindAll(ctx context.Context) ([]Collaborator, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at
		 FROM collaborators
		 ORDER BY last_name ASC, first_name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Collaborator, 0)
	for rows.Next() {
		var c Collaborator
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCollaboratorRepository) FindByID(ctx context.Context, id uuid.UUID) (Collaborator, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at
		 FROM collaborators WHERE id = $1`,
		id,
	)
	var c Collaborator
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Collaborator{}, ErrCollaboratorNotFound
		}
		return Collaborator{}, err
	}
	return c, nil
}

func (r *PostgresCollaboratorRepository) FindByName(ctx context.Context, firstName, lastName string) (Collaborator, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at
		 FROM collaborators WHERE first_name = $1 AND last_name = $2`,
		firstName, lastName,
	)
	var c Collaborator
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Collaborator{}, ErrCollaboratorNotFound
		}
		return Collaborator{}, err
	}
	return c, nil
}

func (r *PostgresCollaboratorRepository) Create(ctx context.Context, firstName, lastName string) (Collaborator, error) {
	c := Collaborator{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}
	c.UpdatedAt = c.CreatedAt

	_, err := r.db.Exec(ctx,
		`INSERT INTO collaborators (id, first_name, last_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.FirstName, c.LastName, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return Collaborator{}, err
	}
	return c, nil
}

func (r *PostgresCollaboratorRepository) Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (Collaborator, error) {
	now := time.Now().UTC()
	affected, err := r.db.Exec(ctx,
		`UPDATE collaborators SET first_name = $1, last_name = $2, updated_at = $3 WHERE id = $4`,
		firstName, lastName, now, id,
	)
	if err != nil {
		return Collaborator{}, err
	}
	if affected == 0 {
		return Collaborator{}, ErrCollaboratorNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresCollaboratorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
