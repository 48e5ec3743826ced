// Package schema provisions the store tables. The DDL is idempotent so the
// serve, provision and import paths can all run it safely; it is written
// twice-over for the two supported dialects rather than templated, because
// the type names are the only thing that differs.
package schema

import (
	"context"
	"fmt"

	"skill-matrix/internal/database"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func Provision(ctx context.Context, db database.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	var idType, tsType, realType string
	switch dialect {
	case DialectPostgres:
		idType, tsType, realType = "UUID", "TIMESTAMPTZ", "DOUBLE PRECISION"
	case DialectSQLite:
		idType, tsType, realType = "TEXT", "TEXT", "REAL"
	default:
		return fmt.Errorf("unknown dialect %q", dialect)
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS collaborators (
			id %[1]s PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, idType, tsType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS technologies (
			id %[1]s PRIMARY KEY,
			name TEXT NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, idType, tsType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS technology_types (
			id %[1]s PRIMARY KEY,
			name TEXT NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, idType, tsType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS projects (
			id %[1]s PRIMARY KEY,
			name TEXT NOT NULL,
			end_period TEXT,
			duration_months INTEGER,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, idType, tsType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS competences (
			id %[1]s PRIMARY KEY,
			collaborator_id %[1]s NOT NULL,
			technology_id %[1]s NOT NULL,
			declared_level INTEGER NOT NULL,
			computed_level %[3]s NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL,
			UNIQUE (collaborator_id, technology_id)
		)`, idType, tsType, realType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS usage_history (
			id %[1]s PRIMARY KEY,
			project_id %[1]s NOT NULL,
			technology_id %[1]s NOT NULL,
			collaborator_id %[1]s NOT NULL,
			start_date TEXT,
			end_period TEXT,
			duration_months INTEGER,
			created_at %[2]s NOT NULL
		)`, idType, tsType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS technology_type_links (
			technology_id %[1]s NOT NULL,
			type_id %[1]s NOT NULL,
			PRIMARY KEY (technology_id, type_id)
		)`, idType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS project_technology_links (
			project_id %[1]s NOT NULL,
			technology_id %[1]s NOT NULL,
			PRIMARY KEY (project_id, technology_id)
		)`, idType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS project_collaborator_links (
			project_id %[1]s NOT NULL,
			collaborator_id %[1]s NOT NULL,
			PRIMARY KEY (project_id, collaborator_id)
		)`, idType),

		`CREATE INDEX IF NOT EXISTS idx_competences_collaborator ON competences (collaborator_id)`,
		`CREATE INDEX IF NOT EXISTS idx_competences_technology ON competences (technology_id)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_history_pair ON usage_history (collaborator_id, technology_id)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_history_project ON usage_history (project_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("provision schema: %w", err)
		}
	}
	return nil
}
