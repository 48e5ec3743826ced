package repository

import (
	"context"
	"fmt"
	"strings"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

// Expert/intermediate/beginner boundaries on the computed level. Shared by
// every aggregation so the buckets stay mutually exclusive and exhaustive.
const (
	ExpertLevel       = 4.0
	IntermediateLevel = 2.0
)

type CapacityRow struct {
	TechnologyID  uuid.UUID
	Technology    string
	Collaborators int
	AvgLevel      float64
	MinLevel      float64
	MaxLevel      float64
	Experts       int
	Intermediates int
	Beginners     int
}

type GapRow struct {
	TechnologyID  uuid.UUID
	Technology    string
	Collaborators int
	Experts       int
	BestLevel     float64
}

type AtRiskRow struct {
	TechnologyID  uuid.UUID
	Technology    string
	Collaborators int
	Experts       int
	AvgLevel      float64
	BestLevel     float64
}

// MatrixCell is one raw LEFT JOIN row; technology fields are nil for
// collaborators without any recorded competence.
type MatrixCell struct {
	CollaboratorID uuid.UUID
	FirstName      string
	LastName       string
	TechnologyID   *uuid.UUID
	TechnologyName *string
	DeclaredLevel  *int
	ComputedLevel  *float64
}

type MatrixFilter struct {
	TechnologyName   string
	CollaboratorName string
	MinComputedLevel *float64
	CaseInsensitive  bool
}

type HeatmapRow struct {
	Collaborator string
	Technology   string
	Level        float64
}

type HolderRow struct {
	CollaboratorID uuid.UUID
	FirstName      string
	LastName       string
	DeclaredLevel  int
	ComputedLevel  float64
}

type Overview struct {
	TotalCollaborators int
	TotalTechnologies  int
	TotalCompetences   int
	TotalProjects      int
	AvgComputedLevel   float64
}

type LevelDistributionRow struct {
	Category string
	Count    int
}

type ProjectUsageRow struct {
	Technology string
	Projects   int
}

type VersatileRow struct {
	Name         string
	Technologies int
	AvgLevel     float64
}

type TopTechnologyRow struct {
	Technology    string
	Collaborators int
	AvgLevel      float64
	Experts       int
	MaxLevel      float64
}

type RadarRow struct {
	Technology    string
	DeclaredLevel int
	ComputedLevel float64
}

// AnalyticsRepository holds every read-only aggregation query. All methods
// are projections over current store state; none mutate anything.
type AnalyticsRepository interface {
	Capacity(ctx context.Context, minLevel float64) ([]CapacityRow, error)
	Gaps(ctx context.Context, expertThreshold int) ([]GapRow, error)
	AtRisk(ctx context.Context, expertThreshold int) ([]AtRiskRow, error)
	MatrixCells(ctx context.Context, f MatrixFilter) ([]MatrixCell, error)
	HeatmapRows(ctx context.Context, technologyIDs []uuid.UUID) ([]HeatmapRow, error)
	TopTechnologyIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
	HoldersByTechnologyName(ctx context.Context, name string, limit int) ([]HolderRow, error)
	Overview(ctx context.Context) (Overview, error)
	LevelDistribution(ctx context.Context) ([]LevelDistributionRow, error)
	TopProjectTechnologies(ctx context.Context, limit int) ([]ProjectUsageRow, error)
	VersatileCollaborators(ctx context.Context, limit int) ([]VersatileRow, error)
	TopTechnologies(ctx context.Context, limit int) ([]TopTechnologyRow, error)
	Radar(ctx context.Context, collaboratorID uuid.UUID) ([]RadarRow, error)
}

type PostgresAnalyticsRepository struct {
	db database.DB
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) Capacity(ctx context.Context, minLevel float64) ([]CapacityRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			t.id,
			t.name,
			COUNT(DISTINCT c.collaborator_id),
			AVG(c.computed_level),
			MIN(c.computed_level),
			MAX(c.computed_level),
			SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END),
			SUM(CASE WHEN c.computed_level >= 2 AND c.computed_level < 4 THEN 1 ELSE 0 END),
			SUM(CASE WHEN c.computed_level < 2 THEN 1 ELSE 0 END)
		FROM technologies t
		JOIN competences c ON c.technology_id = t.id
		WHERE c.computed_level >= $1
		GROUP BY t.id, t.name
		ORDER BY SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END) DESC, AVG(c.computed_level) DESC`,
		minLevel,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CapacityRow, 0)
	for rows.Next() {
		var c CapacityRow
		if err := rows.Scan(&c.TechnologyID, &c.Technology, &c.Collaborators, &c.AvgLevel, &c.MinLevel, &c.MaxLevel, &c.Experts, &c.Intermediates, &c.Beginners); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Gaps keeps the LEFT JOIN so technologies nobody has recorded at all
// surface as zero-expert rows.
func (r *PostgresAnalyticsRepository) Gaps(ctx context.Context, expertThreshold int) ([]GapRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			t.id,
			t.name,
			COUNT(DISTINCT c.collaborator_id),
			COALESCE(SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END), 0),
			COALESCE(MAX(c.computed_level), 0)
		FROM technologies t
		LEFT JOIN competences c ON c.technology_id = t.id
		GROUP BY t.id, t.name
		HAVING COALESCE(SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END), 0) < $1
		ORDER BY COALESCE(SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END), 0) ASC,
			COALESCE(MAX(c.computed_level), 0) ASC`,
		expertThreshold,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GapRow, 0)
	for rows.Next() {
		var g GapRow
		if err := rows.Scan(&g.TechnologyID, &g.Technology, &g.Collaborators, &g.Experts, &g.BestLevel); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AtRisk is the dashboard variant of Gaps: only technologies somebody holds,
// with the average level included.
func (r *PostgresAnalyticsRepository) AtRisk(ctx context.Context, expertThreshold int) ([]AtRiskRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			t.id,
			t.name,
			COUNT(DISTINCT c.collaborator_id),
			SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END),
			AVG(c.computed_level),
			MAX(c.computed_level)
		FROM technologies t
		JOIN competences c ON c.technology_id = t.id
		GROUP BY t.id, t.name
		HAVING SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END) < $1
		ORDER BY SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END) ASC, MAX(c.computed_level) DESC`,
		expertThreshold,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AtRiskRow, 0)
	for rows.Next() {
		var a AtRiskRow
		if err := rows.Scan(&a.TechnologyID, &a.Technology, &a.Collaborators, &a.Experts, &a.AvgLevel, &a.BestLevel); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) MatrixCells(ctx context.Context, f MatrixFilter) ([]MatrixCell, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT
			col.id, col.first_name, col.last_name,
			t.id, t.name,
			c.declared_level, c.computed_level
		FROM collaborators col
		LEFT JOIN competences c ON c.collaborator_id = col.id
		LEFT JOIN technologies t ON t.id = c.technology_id
		WHERE 1=1`)

	args := make([]any, 0, 4)
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}
	like := func(col, ph string) string {
		if f.CaseInsensitive {
			return fmt.Sprintf(" AND LOWER(%s) LIKE LOWER(%s)", col, ph)
		}
		return fmt.Sprintf(" AND %s LIKE %s", col, ph)
	}

	if v := strings.TrimSpace(f.TechnologyName); v != "" {
		sb.WriteString(like("t.name", next()))
		args = append(args, "%"+v+"%")
	}
	if f.MinComputedLevel != nil {
		sb.WriteString(" AND c.computed_level >= " + next())
		args = append(args, *f.MinComputedLevel)
	}
	if v := strings.TrimSpace(f.CollaboratorName); v != "" {
		p1, p2 := next(), next()
		if f.CaseInsensitive {
			sb.WriteString(fmt.Sprintf(" AND (LOWER(col.first_name) LIKE LOWER(%s) OR LOWER(col.last_name) LIKE LOWER(%s))", p1, p2))
		} else {
			sb.WriteString(fmt.Sprintf(" AND (col.first_name LIKE %s OR col.last_name LIKE %s)", p1, p2))
		}
		args = append(args, "%"+v+"%", "%"+v+"%")
	}

	sb.WriteString(" ORDER BY col.last_name, col.first_name, t.name")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatrixCell, 0)
	for rows.Next() {
		var m MatrixCell
		if err := rows.Scan(&m.CollaboratorID, &m.FirstName, &m.LastName, &m.TechnologyID, &m.TechnologyName, &m.DeclaredLevel, &m.ComputedLevel); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) HeatmapRows(ctx context.Context, technologyIDs []uuid.UUID) ([]HeatmapRow, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT
			col.first_name || ' ' || col.last_name,
			t.name,
			c.computed_level
		FROM competences c
		JOIN collaborators col ON col.id = c.collaborator_id
		JOIN technologies t ON t.id = c.technology_id`)

	args := make([]any, 0, len(technologyIDs))
	if len(technologyIDs) > 0 {
		placeholders := make([]string, len(technologyIDs))
		for i, id := range technologyIDs {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, id)
		}
		sb.WriteString(" WHERE t.id IN (" + strings.Join(placeholders, ", ") + ")")
	}
	sb.WriteString(" ORDER BY col.last_name, col.first_name, t.name")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HeatmapRow, 0)
	for rows.Next() {
		var h HeatmapRow
		if err := rows.Scan(&h.Collaborator, &h.Technology, &h.Level); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TopTechnologyIDs ranks technologies by distinct holders; the id tiebreak
// keeps the cut deterministic.
func (r *PostgresAnalyticsRepository) TopTechnologyIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id
		FROM technologies t
		JOIN competences c ON c.technology_id = t.id
		GROUP BY t.id
		ORDER BY COUNT(DISTINCT c.collaborator_id) DESC, t.id ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) HoldersByTechnologyName(ctx context.Context, name string, limit int) ([]HolderRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			col.id, col.first_name, col.last_name,
			c.declared_level, c.computed_level
		FROM competences c
		JOIN collaborators col ON col.id = c.collaborator_id
		JOIN technologies t ON t.id = c.technology_id
		WHERE t.name = $1
		ORDER BY c.computed_level DESC
		LIMIT $2`,
		name, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HolderRow, 0)
	for rows.Next() {
		var h HolderRow
		if err := rows.Scan(&h.CollaboratorID, &h.FirstName, &h.LastName, &h.DeclaredLevel, &h.ComputedLevel); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) Overview(ctx context.Context) (Overview, error) {
	var o Overview
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM collaborators`, &o.TotalCollaborators},
		{`SELECT COUNT(*) FROM technologies`, &o.TotalTechnologies},
		{`SELECT COUNT(*) FROM competences`, &o.TotalCompetences},
		{`SELECT COUNT(*) FROM projects`, &o.TotalProjects},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return Overview{}, err
		}
	}
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(AVG(computed_level), 0) FROM competences`).Scan(&o.AvgComputedLevel); err != nil {
		return Overview{}, err
	}
	return o, nil
}

func (r *PostgresAnalyticsRepository) LevelDistribution(ctx context.Context) ([]LevelDistributionRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			CASE
				WHEN computed_level >= 4 THEN 'expert'
				WHEN computed_level >= 2 THEN 'intermediate'
				ELSE 'beginner'
			END AS category,
			COUNT(*)
		FROM competences
		GROUP BY category
		ORDER BY category ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LevelDistributionRow, 0, 3)
	for rows.Next() {
		var d LevelDistributionRow
		if err := rows.Scan(&d.Category, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TopProjectTechnologies counts distinct projects in usage history, not raw
// rows, so bulk-import duplicates do not skew the ranking here.
func (r *PostgresAnalyticsRepository) TopProjectTechnologies(ctx context.Context, limit int) ([]ProjectUsageRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.name, COUNT(DISTINCT h.project_id)
		FROM usage_history h
		JOIN technologies t ON t.id = h.technology_id
		GROUP BY t.id, t.name
		ORDER BY COUNT(DISTINCT h.project_id) DESC, t.name ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectUsageRow, 0)
	for rows.Next() {
		var p ProjectUsageRow
		if err := rows.Scan(&p.Technology, &p.Projects); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) VersatileCollaborators(ctx context.Context, limit int) ([]VersatileRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			col.first_name || ' ' || col.last_name,
			COUNT(DISTINCT c.technology_id),
			AVG(c.computed_level)
		FROM collaborators col
		JOIN competences c ON c.collaborator_id = col.id
		GROUP BY col.id, col.first_name, col.last_name
		ORDER BY COUNT(DISTINCT c.technology_id) DESC, AVG(c.computed_level) DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]VersatileRow, 0)
	for rows.Next() {
		var v VersatileRow
		if err := rows.Scan(&v.Name, &v.Technologies, &v.AvgLevel); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) TopTechnologies(ctx context.Context, limit int) ([]TopTechnologyRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			t.name,
			COUNT(DISTINCT c.collaborator_id),
			AVG(c.computed_level),
			SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END),
			MAX(c.computed_level)
		FROM technologies t
		JOIN competences c ON c.technology_id = t.id
		GROUP BY t.id, t.name
		ORDER BY SUM(CASE WHEN c.computed_level >= 4 THEN 1 ELSE 0 END) DESC, AVG(c.computed_level) DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopTechnologyRow, 0)
	for rows.Next() {
		var t TopTechnologyRow
		if err := rows.Scan(&t.Technology, &t.Collaborators, &t.AvgLevel, &t.Experts, &t.MaxLevel); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) Radar(ctx context.Context, collaboratorID uuid.UUID) ([]RadarRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.name, c.declared_level, c.computed_level
		FROM competences c
		JOIN technologies t ON t.id = c.technology_id
		WHERE c.collaborator_id = $1
		ORDER BY c.computed_level DESC`,
		collaboratorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RadarRow, 0)
	for rows.Next() {
		var rr RadarRow
		if err := rows.Scan(&rr.Technology, &rr.DeclaredLevel, &rr.ComputedLevel); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
