package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCollaboratorNotFound = errors.New("collaborator not found")

const (
	DefaultTopTechnologies = 10
	DefaultTopBreakdown    = 10
)

type OverviewReport struct {
	TotalCollaborators int     `json:"total_collaborators"`
	TotalTechnologies  int     `json:"total_technologies"`
	TotalCompetences   int     `json:"total_competences"`
	TotalProjects      int     `json:"total_projects"`
	AvgComputedLevel   float64 `json:"avg_computed_level"`
}

type LevelBucket struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type ProjectTechnologyUsage struct {
	Technology string `json:"technology"`
	Projects   int    `json:"projects"`
}

type VersatileCollaborator struct {
	Name         string  `json:"name"`
	Technologies int     `json:"technologies"`
	AvgLevel     float64 `json:"avg_level"`
}

type StatisticsReport struct {
	LevelDistribution      []LevelBucket            `json:"level_distribution"`
	TopProjectTechnologies []ProjectTechnologyUsage `json:"top_project_technologies"`
	VersatileCollaborators []VersatileCollaborator  `json:"versatile_collaborators"`
}

type TopTechnologyItem struct {
	Technology    string  `json:"technology"`
	Collaborators int     `json:"collaborators"`
	AvgLevel      float64 `json:"avg_level"`
	Experts       int     `json:"experts"`
	MaxLevel      float64 `json:"max_level"`
}

type TopTechnologiesReport struct {
	Technologies []TopTechnologyItem `json:"technologies"`
	Total        int                 `json:"total"`
}

type AtRiskItem struct {
	Technology         string  `json:"technology"`
	TotalCollaborators int     `json:"total_collaborators"`
	Experts            int     `json:"experts"`
	AvgLevel           float64 `json:"avg_level"`
	BestLevel          float64 `json:"best_level"`
	RiskLevel          string  `json:"risk_level"`
}

type AtRiskReport struct {
	Technologies []AtRiskItem `json:"technologies"`
	Total        int          `json:"total"`
}

type RadarAxis struct {
	Technology    string  `json:"technology"`
	DeclaredLevel int     `json:"declared_level"`
	ComputedLevel float64 `json:"computed_level"`
}

type RadarReport struct {
	CollaboratorID uuid.UUID   `json:"collaborator_id"`
	Collaborator   string      `json:"collaborator"`
	Axes           []RadarAxis `json:"axes"`
	TotalAxes      int         `json:"total_axes"`
}

type DashboardUsecase interface {
	Overview(ctx context.Context) (OverviewReport, error)
	Statistics(ctx context.Context) (StatisticsReport, error)
	TopTechnologies(ctx context.Context, limit int) (TopTechnologiesReport, error)
	AtRisk(ctx context.Context, expertThreshold int) (AtRiskReport, error)
	Radar(ctx context.Context, collaboratorID uuid.UUID) (RadarReport, error)
}

type Dashboard struct {
	analytics     repository.AnalyticsRepository
	collaborators repository.CollaboratorRepository
	cache         Cache
	logger        *zap.Logger
}

func NewDashboardUsecase(analytics repository.AnalyticsRepository, collaborators repository.CollaboratorRepository, cache Cache, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{analytics: analytics, collaborators: collaborators, cache: cache, logger: logger}
}

func (u *Dashboard) Overview(ctx context.Context) (OverviewReport, error) {
	return cached(ctx, u.cache, aggCacheKey("overview"), 0, func() (OverviewReport, error) {
		ov, err := u.analytics.Overview(ctx)
		if err != nil {
			return OverviewReport{}, ErrInternal
		}
		return OverviewReport{
			TotalCollaborators: ov.TotalCollaborators,
			TotalTechnologies:  ov.TotalTechnologies,
			TotalCompetences:   ov.TotalCompetences,
			TotalProjects:      ov.TotalProjects,
			AvgComputedLevel:   round2(ov.AvgComputedLevel),
		}, nil
	})
}

func (u *Dashboard) Statistics(ctx context.Context) (StatisticsReport, error) {
	return cached(ctx, u.cache, aggCacheKey("statistics"), 0, func() (StatisticsReport, error) {
		distribution, err := u.analytics.LevelDistribution(ctx)
		if err != nil {
			return StatisticsReport{}, ErrInternal
		}
		usage, err := u.analytics.TopProjectTechnologies(ctx, DefaultTopBreakdown)
		if err != nil {
			return StatisticsReport{}, ErrInternal
		}
		versatile, err := u.analytics.VersatileCollaborators(ctx, DefaultTopBreakdown)
		if err != nil {
			return StatisticsReport{}, ErrInternal
		}

		report := StatisticsReport{
			LevelDistribution:      make([]LevelBucket, 0, len(distribution)),
			TopProjectTechnologies: make([]ProjectTechnologyUsage, 0, len(usage)),
			VersatileCollaborators: make([]VersatileCollaborator, 0, len(versatile)),
		}
		for _, d := range distribution {
			report.LevelDistribution = append(report.LevelDistribution, LevelBucket{Category: d.Category, Count: d.Count})
		}
		for _, p := range usage {
			report.TopProjectTechnologies = append(report.TopProjectTechnologies, ProjectTechnologyUsage{Technology: p.Technology, Projects: p.Projects})
		}
		for _, v := range versatile {
			report.VersatileCollaborators = append(report.VersatileCollaborators, VersatileCollaborator{
				Name:         v.Name,
				Technologies: v.Technologies,
				AvgLevel:     round2(v.AvgLevel),
			})
		}
		return report, nil
	})
}

func (u *Dashboard) TopTechnologies(ctx context.Context, limit int) (TopTechnologiesReport, error) {
	if limit <= 0 {
		limit = DefaultTopTechnologies
	}

	return cached(ctx, u.cache, aggCacheKey("top-technologies", limit), 0, func() (TopTechnologiesReport, error) {
		rows, err := u.analytics.TopTechnologies(ctx, limit)
		if err != nil {
			return TopTechnologiesReport{}, ErrInternal
		}

		items := make([]TopTechnologyItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, TopTechnologyItem{
				Technology:    r.Technology,
				Collaborators: r.Collaborators,
				AvgLevel:      round2(r.AvgLevel),
				Experts:       r.Experts,
				MaxLevel:      r.MaxLevel,
			})
		}
		return TopTechnologiesReport{Technologies: items, Total: len(items)}, nil
	})
}

func (u *Dashboard) AtRisk(ctx context.Context, expertThreshold int) (AtRiskReport, error) {
	if expertThreshold <= 0 {
		expertThreshold = DefaultExpertThreshold
	}

	return cached(ctx, u.cache, aggCacheKey("at-risk", expertThreshold), 0, func() (AtRiskReport, error) {
		rows, err := u.analytics.AtRisk(ctx, expertThreshold)
		if err != nil {
			return AtRiskReport{}, ErrInternal
		}

		items := make([]AtRiskItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, AtRiskItem{
				Technology:         r.Technology,
				TotalCollaborators: r.Collaborators,
				Experts:            r.Experts,
				AvgLevel:           round2(r.AvgLevel),
				BestLevel:          r.BestLevel,
				RiskLevel:          riskLevel(r.Experts),
			})
		}
		return AtRiskReport{Technologies: items, Total: len(items)}, nil
	})
}

// Radar distinguishes an unknown collaborator from one with no recorded
// competences: the former is a not-found error, the latter an empty axis set.
func (u *Dashboard) Radar(ctx context.Context, collaboratorID uuid.UUID) (RadarReport, error) {
	col, err := u.collaborators.FindByID(ctx, collaboratorID)
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return RadarReport{}, ErrCollaboratorNotFound
		}
		return RadarReport{}, ErrInternal
	}

	rows, err := u.analytics.Radar(ctx, collaboratorID)
	if err != nil {
		return RadarReport{}, ErrInternal
	}

	axes := make([]RadarAxis, 0, len(rows))
	for _, r := range rows {
		axes = append(axes, RadarAxis{
			Technology:    r.Technology,
			DeclaredLevel: r.DeclaredLevel,
			ComputedLevel: r.ComputedLevel,
		})
	}
	return RadarReport{
		CollaboratorID: col.ID,
		Collaborator:   col.FirstName + " " + col.LastName,
		Axes:           axes,
		TotalAxes:      len(axes),
	}, nil
}
