package repository

import (
	"context"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var (
	ErrCompetenceNotFound = errors.New("competence not found")
	ErrCompetenceExists   = errors.New("competence already exists")
)

// Competence is the unique (collaborator, technology) pairing. ComputedLevel
// starts equal to DeclaredLevel and is only ever rewritten by a rescoring
// pass.
type Competence struct {
	ID             uuid.UUID
	CollaboratorID uuid.UUID
	TechnologyID   uuid.UUID
	DeclaredLevel  int
	ComputedLevel  float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CompetenceRepository interface {
	FindAll(ctx context.Context) ([]Competence, error)
	FindByID(ctx context.Context, id uuid.UUID) (Competence, error)
	FindByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]Competence, error)
	FindByTechnology(ctx context.Context, technologyID uuid.UUID) ([]Competence, error)
	FindByPair(ctx context.Context, collaboratorID, technologyID uuid.UUID) (Competence, error)
	Create(ctx context.Context, c Competence) (Competence, error)
	UpdateLevels(ctx context.Context, id uuid.UUID, declaredLevel int, computedLevel float64) (Competence, error)
	UpdateComputedLevel(ctx context.Context, id uuid.UUID, computedLevel float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCompetenceRepository struct {
	db database.DB
}

func NewPostgresCompetenceRepository(db database.DB) *PostgresCompetenceRepository {
	return &PostgresCompetenceRepository{db: db}
}

const competenceColumns = `id, collaborator_id, technology_id, declared_level, computed_level, created_at, updated_at`

func (r *PostgresCompetenceRepository) scanMany(rows database.Rows) ([]Competence, error) {
	defer rows.Close()

	out := make([]Competence, 0)
	for rows.Next() {
		var c Competence
		if err := rows.Scan(&c.ID, &c.CollaboratorID, &c.TechnologyID, &c.DeclaredLevel, &c.ComputedLevel, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompetenceRepository) FindAll(ctx context.Context) ([]Competence, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+competenceColumns+` FROM competences ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresCompetenceRepository) FindByID(ctx context.Context, id uuid.UUID) (Competence, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+competenceColumns+` FROM competences WHERE id = $1`, id,
	)
	var c Competence
	if err := row.Scan(&c.ID, &c.CollaboratorID, &c.TechnologyID, &c.DeclaredLevel, &c.ComputedLevel, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Competence{}, ErrCompetenceNotFound
		}
		return Competence{}, err
	}
	return c, nil
}

func (r *PostgresCompetenceRepository) FindByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]Competence, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+competenceColumns+` FROM competences WHERE collaborator_id = $1 ORDER BY created_at ASC`,
		collaboratorID,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresCompetenceRepository) FindByTechnology(ctx context.Context, technologyID uuid.UUID) ([]Competence, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+competenceColumns+` FROM competences WHERE technology_id = $1 ORDER BY computed_level DESC`,
		technologyID,
	)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *PostgresCompetenceRepository) FindByPair(ctx context.Context, collaboratorID, technologyID uuid.UUID) (Competence, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+competenceColumns+` FROM competences WHERE collaborator_id = $1 AND technology_id = $2`,
		collaboratorID, technologyID,
	)
	var c Competence
	if err := row.Scan(&c.ID, &c.CollaboratorID, &c.TechnologyID, &c.DeclaredLevel, &c.ComputedLevel, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return Competence{}, ErrCompetenceNotFound
		}
		return Competence{}, err
	}
	return c, nil
}

func (r *PostgresCompetenceRepository) Create(ctx context.Context, c Competence) (Competence, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt

	_, err := r.db.Exec(ctx,
		`INSERT INTO competences (id, collaborator_id, technology_id, declared_level, computed_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.CollaboratorID, c.TechnologyID, c.DeclaredLevel, c.ComputedLevel, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Competence{}, ErrCompetenceExists
		}
		return Competence{}, err
	}
	return c, nil
}

func (r *PostgresCompetenceRepository) UpdateLevels(ctx context.Context, id uuid.UUID, declaredLevel int, computedLevel float64) (Competence, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE competences SET declared_level = $1, computed_level = $2, updated_at = $3 WHERE id = $4`,
		declaredLevel, computedLevel, time.Now().UTC(), id,
	)
	if err != nil {
		return Competence{}, err
	}
	if affected == 0 {
		return Competence{}, ErrCompetenceNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdateComputedLevel is the scoring engine's only write: the computed level
// and the updated timestamp, never the declared level.
func (r *PostgresCompetenceRepository) UpdateComputedLevel(ctx context.Context, id uuid.UUID, computedLevel float64) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE competences SET computed_level = $1, updated_at = $2 WHERE id = $3`,
		computedLevel, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCompetenceNotFound
	}
	return nil
}

func (r *PostgresCompetenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM competences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCompetenceNotFound
	}
	return nil
}
