package repository

import (
	"context"
	"errors"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var ErrRelationNotFound = errors.New("relation not found")

type TechnologyTypeLink struct {
	TechnologyID uuid.UUID
	TypeID       uuid.UUID
}

type ProjectTechnologyLink struct {
	ProjectID    uuid.UUID
	TechnologyID uuid.UUID
}

type ProjectCollaboratorLink struct {
	ProjectID      uuid.UUID
	CollaboratorID uuid.UUID
}

// RelationRepository owns the three payload-free many-to-many tables.
// Linking an existing pair is an idempotent no-op; the uniqueness invariant
// is enforced by the composite primary keys.
type RelationRepository interface {
	LinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error
	UnlinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error
	ListTechnologyTypes(ctx context.Context) ([]TechnologyTypeLink, error)

	LinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error
	UnlinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error
	ListProjectTechnologies(ctx context.Context) ([]ProjectTechnologyLink, error)

	LinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error
	UnlinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error
	ListProjectCollaborators(ctx context.Context) ([]ProjectCollaboratorLink, error)
}

type PostgresRelationRepository struct {
	db database.DB
}

func NewPostgresRelationRepository(db database.DB) *PostgresRelationRepository {
	return &PostgresRelationRepository{db: db}
}

func (r *PostgresRelationRepository) link(ctx context.Context, query string, a, b uuid.UUID) error {
	_, err := r.db.Exec(ctx, query, a, b)
	return err
}

func (r *PostgresRelationRepository) unlink(ctx context.Context, query string, a, b uuid.UUID) error {
	affected, err := r.db.Exec(ctx, query, a, b)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRelationNotFound
	}
	return nil
}

func (r *PostgresRelationRepository) LinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO technology_type_links (technology_id, type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		technologyID, typeID,
	)
}

func (r *PostgresRelationRepository) UnlinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error {
	return r.unlink(ctx,
		`DELETE FROM technology_type_links WHERE technology_id = $1 AND type_id = $2`,
		technologyID, typeID,
	)
}

func (r *PostgresRelationRepository) ListTechnologyTypes(ctx context.Context) ([]TechnologyTypeLink, error) {
	rows, err := r.db.Query(ctx, `SELECT technology_id, type_id FROM technology_type_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TechnologyTypeLink, 0)
	for rows.Next() {
		var l TechnologyTypeLink
		if err := rows.Scan(&l.TechnologyID, &l.TypeID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRelationRepository) LinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO project_technology_links (project_id, technology_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		projectID, technologyID,
	)
}

func (r *PostgresRelationRepository) UnlinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error {
	return r.unlink(ctx,
		`DELETE FROM project_technology_links WHERE project_id = $1 AND technology_id = $2`,
		projectID, technologyID,
	)
}

func (r *PostgresRelationRepository) ListProjectTechnologies(ctx context.Context) ([]ProjectTechnologyLink, error) {
	rows, err := r.db.Query(ctx, `SELECT project_id, technology_id FROM project_technology_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectTechnologyLink, 0)
	for rows.Next() {
		var l ProjectTechnologyLink
		if err := rows.Scan(&l.ProjectID, &l.TechnologyID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRelationRepository) LinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO project_collaborator_links (project_id, collaborator_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		projectID, collaboratorID,
	)
}

func (r *PostgresRelationRepository) UnlinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error {
	return r.unlink(ctx,
		`DELETE FROM project_collaborator_links WHERE project_id = $1 AND collaborator_id = $2`,
		projectID, collaboratorID,
	)
}

func (r *PostgresRelationRepository) ListProjectCollaborators(ctx context.Context) ([]ProjectCollaboratorLink, error) {
	rows, err := r.db.Query(ctx, `SELECT project_id, collaborator_id FROM project_collaborator_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectCollaboratorLink, 0)
	for rows.Next() {
		var l ProjectCollaboratorLink
		if err := rows.Scan(&l.ProjectID, &l.CollaboratorID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
