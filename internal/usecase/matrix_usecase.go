package usecase

import (
	"context"
	"fmt"
	"sort"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cell colors on the effective level.
const (
	ColorUnrated = "unrated"
	ColorHigh    = "high"
	ColorMedium  = "medium"
	ColorLow     = "low"
)

type MatrixQuery struct {
	Technology   string
	Collaborator string
	MinLevel     *float64
}

type MatrixCellView struct {
	DeclaredLevel  *int     `json:"declared_level"`
	ComputedLevel  *float64 `json:"computed_level"`
	EffectiveLevel *float64 `json:"effective_level"`
	Color          string   `json:"color"`
}

type MatrixRowView struct {
	CollaboratorID uuid.UUID                 `json:"collaborator_id"`
	Collaborator   string                    `json:"collaborator"`
	Cells          map[string]MatrixCellView `json:"cells"`
}

type MatrixFilters struct {
	Technology      string   `json:"technology,omitempty"`
	Collaborator    string   `json:"collaborator,omitempty"`
	MinLevel        *float64 `json:"min_level,omitempty"`
	CaseInsensitive bool     `json:"case_insensitive"`
}

type MatrixReport struct {
	Technologies       []string        `json:"technologies"`
	Rows               []MatrixRowView `json:"rows"`
	TotalCollaborators int             `json:"total_collaborators"`
	TotalTechnologies  int             `json:"total_technologies"`
	Filters            MatrixFilters   `json:"filters"`
}

type SimpleMatrixReport struct {
	Matrix             map[string]map[string]float64 `json:"matrix"`
	TotalCollaborators int                           `json:"total_collaborators"`
}

type HeatmapEntry struct {
	Collaborator string  `json:"collaborator"`
	Technology   string  `json:"technology"`
	Level        float64 `json:"level"`
	Color        string  `json:"color"`
}

type HeatmapReport struct {
	Entries      []HeatmapEntry `json:"entries"`
	Technologies []string       `json:"technologies"`
	TotalEntries int            `json:"total_entries"`
}

type MatrixUsecase interface {
	Matrix(ctx context.Context, q MatrixQuery) (MatrixReport, error)
	Simple(ctx context.Context) (SimpleMatrixReport, error)
	Heatmap(ctx context.Context, topN int) (HeatmapReport, error)
}

type Matrix struct {
	analytics       repository.AnalyticsRepository
	cache           Cache
	caseInsensitive bool
	logger          *zap.Logger
}

func NewMatrixUsecase(analytics repository.AnalyticsRepository, cache Cache, caseInsensitive bool, logger *zap.Logger) *Matrix {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matrix{analytics: analytics, cache: cache, caseInsensitive: caseInsensitive, logger: logger}
}

// Matrix densifies the store rows into a full grid: every collaborator row
// carries exactly one cell per technology in the filtered set, absent pairs
// included.
func (u *Matrix) Matrix(ctx context.Context, q MatrixQuery) (MatrixReport, error) {
	key := aggCacheKey("matrix", q.Technology, q.Collaborator, minLevelKey(q.MinLevel))

	return cached(ctx, u.cache, key, 0, func() (MatrixReport, error) {
		cells, err := u.analytics.MatrixCells(ctx, repository.MatrixFilter{
			TechnologyName:   q.Technology,
			CollaboratorName: q.Collaborator,
			MinComputedLevel: q.MinLevel,
			CaseInsensitive:  u.caseInsensitive,
		})
		if err != nil {
			return MatrixReport{}, ErrInternal
		}

		techSet := make(map[string]struct{})
		rowIndex := make(map[uuid.UUID]int)
		rows := make([]MatrixRowView, 0)

		for _, c := range cells {
			i, ok := rowIndex[c.CollaboratorID]
			if !ok {
				i = len(rows)
				rowIndex[c.CollaboratorID] = i
				rows = append(rows, MatrixRowView{
					CollaboratorID: c.CollaboratorID,
					Collaborator:   c.FirstName + " " + c.LastName,
					Cells:          make(map[string]MatrixCellView),
				})
			}
			if c.TechnologyName == nil {
				continue
			}
			techSet[*c.TechnologyName] = struct{}{}
			rows[i].Cells[*c.TechnologyName] = buildCell(c.DeclaredLevel, c.ComputedLevel)
		}

		technologies := make([]string, 0, len(techSet))
		for name := range techSet {
			technologies = append(technologies, name)
		}
		sort.Strings(technologies)

		for i := range rows {
			for _, name := range technologies {
				if _, ok := rows[i].Cells[name]; !ok {
					rows[i].Cells[name] = MatrixCellView{Color: ColorUnrated}
				}
			}
		}

		return MatrixReport{
			Technologies:       technologies,
			Rows:               rows,
			TotalCollaborators: len(rows),
			TotalTechnologies:  len(technologies),
			Filters: MatrixFilters{
				Technology:      q.Technology,
				Collaborator:    q.Collaborator,
				MinLevel:        q.MinLevel,
				CaseInsensitive: u.caseInsensitive,
			},
		}, nil
	})
}

// Simple flattens the grid to collaborator name -> technology -> computed
// level, skipping absent pairs.
func (u *Matrix) Simple(ctx context.Context) (SimpleMatrixReport, error) {
	return cached(ctx, u.cache, aggCacheKey("matrix-simple"), 0, func() (SimpleMatrixReport, error) {
		cells, err := u.analytics.MatrixCells(ctx, repository.MatrixFilter{})
		if err != nil {
			return SimpleMatrixReport{}, ErrInternal
		}

		matrix := make(map[string]map[string]float64)
		for _, c := range cells {
			name := c.FirstName + " " + c.LastName
			if _, ok := matrix[name]; !ok {
				matrix[name] = make(map[string]float64)
			}
			if c.TechnologyName == nil || c.ComputedLevel == nil {
				continue
			}
			matrix[name][*c.TechnologyName] = *c.ComputedLevel
		}

		return SimpleMatrixReport{Matrix: matrix, TotalCollaborators: len(matrix)}, nil
	})
}

// Heatmap restricts to the topN technologies with the most distinct holders;
// topN <= 0 keeps every technology.
func (u *Matrix) Heatmap(ctx context.Context, topN int) (HeatmapReport, error) {
	return cached(ctx, u.cache, aggCacheKey("heatmap", topN), 0, func() (HeatmapReport, error) {
		var ids []uuid.UUID
		if topN > 0 {
			var err error
			ids, err = u.analytics.TopTechnologyIDs(ctx, topN)
			if err != nil {
				return HeatmapReport{}, ErrInternal
			}
			if len(ids) == 0 {
				return HeatmapReport{Entries: []HeatmapEntry{}, Technologies: []string{}}, nil
			}
		}

		rows, err := u.analytics.HeatmapRows(ctx, ids)
		if err != nil {
			return HeatmapReport{}, ErrInternal
		}

		entries := make([]HeatmapEntry, 0, len(rows))
		techSet := make(map[string]struct{})
		for _, r := range rows {
			entries = append(entries, HeatmapEntry{
				Collaborator: r.Collaborator,
				Technology:   r.Technology,
				Level:        r.Level,
				Color:        colorForLevel(r.Level),
			})
			techSet[r.Technology] = struct{}{}
		}

		technologies := make([]string, 0, len(techSet))
		for name := range techSet {
			technologies = append(technologies, name)
		}
		sort.Strings(technologies)

		return HeatmapReport{Entries: entries, Technologies: technologies, TotalEntries: len(entries)}, nil
	})
}

func buildCell(declared *int, computed *float64) MatrixCellView {
	cell := MatrixCellView{DeclaredLevel: declared, ComputedLevel: computed}

	switch {
	case computed != nil:
		cell.EffectiveLevel = computed
	case declared != nil:
		v := float64(*declared)
		cell.EffectiveLevel = &v
	}

	if cell.EffectiveLevel == nil {
		cell.Color = ColorUnrated
		return cell
	}
	cell.Color = colorForLevel(*cell.EffectiveLevel)
	return cell
}

func colorForLevel(level float64) string {
	switch {
	case level >= repository.ExpertLevel:
		return ColorHigh
	case level >= repository.IntermediateLevel:
		return ColorMedium
	default:
		return ColorLow
	}
}

func minLevelKey(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
