package usecase

import (
	"context"
	"math"
	"sort"
	"strings"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCapacityFloor   = 3.0
	DefaultExpertThreshold = 2
	DefaultTeamSize        = 5
)

// Gap reasons surfaced by the allocation suggestion.
const (
	ReasonNoHolders = "no one has this skill"
	ReasonNoExpert  = "no expert available"
)

type CapacityItem struct {
	Technology         string  `json:"technology"`
	TotalCollaborators int     `json:"total_collaborators"`
	AvgLevel           float64 `json:"avg_level"`
	MinLevel           float64 `json:"min_level"`
	MaxLevel           float64 `json:"max_level"`
	Experts            int     `json:"experts"`
	Intermediates      int     `json:"intermediates"`
	Beginners          int     `json:"beginners"`
	CapacityLevel      string  `json:"capacity_level"`
}

type CapacityReport struct {
	Capacity          []CapacityItem `json:"capacity"`
	TotalTechnologies int            `json:"total_technologies"`
	MinLevelFilter    float64        `json:"min_level_filter"`
}

type GapItem struct {
	Technology         string  `json:"technology"`
	Experts            int     `json:"experts"`
	TotalCollaborators int     `json:"total_collaborators"`
	BestLevel          float64 `json:"best_level"`
	RiskLevel          string  `json:"risk_level"`
	Recommendation     string  `json:"recommendation"`
}

type GapReport struct {
	Gaps         []GapItem `json:"gaps"`
	TotalGaps    int       `json:"total_gaps"`
	CriticalGaps int       `json:"critical_gaps"`
	HighRiskGaps int       `json:"high_risk_gaps"`
}

type SuggestedCollaborator struct {
	CollaboratorID uuid.UUID `json:"collaborator_id"`
	Name           string    `json:"name"`
	DeclaredLevel  int       `json:"declared_level"`
	ComputedLevel  float64   `json:"computed_level"`
	IsExpert       bool      `json:"is_expert"`
}

type AllocationGap struct {
	Technology string   `json:"technology"`
	Reason     string   `json:"reason"`
	BestLevel  *float64 `json:"best_level,omitempty"`
}

type MatchedTechnology struct {
	Technology string  `json:"technology"`
	Level      float64 `json:"level"`
}

type OverallFit struct {
	CollaboratorID      uuid.UUID           `json:"collaborator_id"`
	Name                string              `json:"name"`
	Technologies        []MatchedTechnology `json:"technologies"`
	TechnologiesMatched int                 `json:"technologies_matched"`
	TotalScore          float64             `json:"total_score"`
	AvgLevel            float64             `json:"avg_level"`
	MatchPercentage     float64             `json:"match_percentage"`
}

type SuggestInput struct {
	Technologies []string
	TeamSize     int
}

type SuggestReport struct {
	SuggestionsByTechnology map[string][]SuggestedCollaborator `json:"suggestions_by_technology"`
	BestOverallFits         []OverallFit                       `json:"best_overall_fits"`
	Gaps                    []AllocationGap                    `json:"gaps"`
	TotalTechnologies       int                                `json:"total_technologies"`
	TechnologiesWithExperts int                                `json:"technologies_with_experts"`
}

type AllocationUsecase interface {
	Capacity(ctx context.Context, minLevel float64) (CapacityReport, error)
	Gaps(ctx context.Context, expertThreshold int) (GapReport, error)
	Suggest(ctx context.Context, in SuggestInput) (SuggestReport, error)
}

type Allocation struct {
	analytics repository.AnalyticsRepository
	cache     Cache
	logger    *zap.Logger
}

func NewAllocationUsecase(analytics repository.AnalyticsRepository, cache Cache, logger *zap.Logger) *Allocation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocation{analytics: analytics, cache: cache, logger: logger}
}

func (u *Allocation) Capacity(ctx context.Context, minLevel float64) (CapacityReport, error) {
	if minLevel <= 0 {
		minLevel = DefaultCapacityFloor
	}

	return cached(ctx, u.cache, aggCacheKey("capacity", minLevel), 0, func() (CapacityReport, error) {
		rows, err := u.analytics.Capacity(ctx, minLevel)
		if err != nil {
			return CapacityReport{}, ErrInternal
		}

		items := make([]CapacityItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, CapacityItem{
				Technology:         r.Technology,
				TotalCollaborators: r.Collaborators,
				AvgLevel:           round2(r.AvgLevel),
				MinLevel:           r.MinLevel,
				MaxLevel:           r.MaxLevel,
				Experts:            r.Experts,
				Intermediates:      r.Intermediates,
				Beginners:          r.Beginners,
				CapacityLevel:      capacityLevel(r.Experts),
			})
		}
		return CapacityReport{
			Capacity:          items,
			TotalTechnologies: len(items),
			MinLevelFilter:    minLevel,
		}, nil
	})
}

func (u *Allocation) Gaps(ctx context.Context, expertThreshold int) (GapReport, error) {
	if expertThreshold <= 0 {
		expertThreshold = DefaultExpertThreshold
	}

	return cached(ctx, u.cache, aggCacheKey("gaps", expertThreshold), 0, func() (GapReport, error) {
		rows, err := u.analytics.Gaps(ctx, expertThreshold)
		if err != nil {
			return GapReport{}, ErrInternal
		}

		report := GapReport{Gaps: make([]GapItem, 0, len(rows))}
		for _, r := range rows {
			risk := riskLevel(r.Experts)
			report.Gaps = append(report.Gaps, GapItem{
				Technology:         r.Technology,
				Experts:            r.Experts,
				TotalCollaborators: r.Collaborators,
				BestLevel:          r.BestLevel,
				RiskLevel:          risk,
				Recommendation:     recommendation(r.Experts, r.BestLevel),
			})
			switch risk {
			case "critical":
				report.CriticalGaps++
			case "high":
				report.HighRiskGaps++
			}
		}
		report.TotalGaps = len(report.Gaps)
		return report, nil
	})
}

// Suggest is a greedy ranking, not an assignment solver: the same
// collaborator may headline several technologies and nothing guarantees the
// union of picks covers every request.
func (u *Allocation) Suggest(ctx context.Context, in SuggestInput) (SuggestReport, error) {
	names := make([]string, 0, len(in.Technologies))
	for _, name := range in.Technologies {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return SuggestReport{}, ErrInvalidInput
	}
	teamSize := in.TeamSize
	if teamSize <= 0 {
		teamSize = DefaultTeamSize
	}

	report := SuggestReport{
		SuggestionsByTechnology: make(map[string][]SuggestedCollaborator, len(names)),
		Gaps:                    make([]AllocationGap, 0),
		TotalTechnologies:       len(names),
	}

	type fitAccumulator struct {
		fit OverallFit
	}
	fits := make(map[uuid.UUID]*fitAccumulator)
	gapTechnologies := make(map[string]struct{})

	for _, name := range names {
		holders, err := u.analytics.HoldersByTechnologyName(ctx, name, teamSize)
		if err != nil {
			return SuggestReport{}, ErrInternal
		}

		if len(holders) == 0 {
			report.SuggestionsByTechnology[name] = []SuggestedCollaborator{}
			report.Gaps = append(report.Gaps, AllocationGap{Technology: name, Reason: ReasonNoHolders})
			gapTechnologies[name] = struct{}{}
			continue
		}

		if holders[0].ComputedLevel < repository.ExpertLevel {
			best := holders[0].ComputedLevel
			report.Gaps = append(report.Gaps, AllocationGap{
				Technology: name,
				Reason:     ReasonNoExpert,
				BestLevel:  &best,
			})
			gapTechnologies[name] = struct{}{}
		}

		picks := make([]SuggestedCollaborator, 0, len(holders))
		for _, h := range holders {
			picks = append(picks, SuggestedCollaborator{
				CollaboratorID: h.CollaboratorID,
				Name:           h.FirstName + " " + h.LastName,
				DeclaredLevel:  h.DeclaredLevel,
				ComputedLevel:  h.ComputedLevel,
				IsExpert:       h.ComputedLevel >= repository.ExpertLevel,
			})

			acc, ok := fits[h.CollaboratorID]
			if !ok {
				acc = &fitAccumulator{fit: OverallFit{
					CollaboratorID: h.CollaboratorID,
					Name:           h.FirstName + " " + h.LastName,
					Technologies:   make([]MatchedTechnology, 0, 2),
				}}
				fits[h.CollaboratorID] = acc
			}
			acc.fit.Technologies = append(acc.fit.Technologies, MatchedTechnology{Technology: name, Level: h.ComputedLevel})
			acc.fit.TotalScore += h.ComputedLevel
		}
		report.SuggestionsByTechnology[name] = picks
	}

	best := make([]OverallFit, 0, len(fits))
	for _, acc := range fits {
		f := acc.fit
		f.TechnologiesMatched = len(f.Technologies)
		if f.TechnologiesMatched > 0 {
			f.AvgLevel = round2(f.TotalScore / float64(f.TechnologiesMatched))
		}
		f.TotalScore = round2(f.TotalScore)
		f.MatchPercentage = round2(float64(f.TechnologiesMatched) / float64(report.TotalTechnologies) * 100)
		best = append(best, f)
	}
	sort.Slice(best, func(i, j int) bool {
		if best[i].TechnologiesMatched != best[j].TechnologiesMatched {
			return best[i].TechnologiesMatched > best[j].TechnologiesMatched
		}
		if best[i].AvgLevel != best[j].AvgLevel {
			return best[i].AvgLevel > best[j].AvgLevel
		}
		return best[i].Name < best[j].Name
	})
	if len(best) > teamSize {
		best = best[:teamSize]
	}
	report.BestOverallFits = best
	report.TechnologiesWithExperts = report.TotalTechnologies - len(gapTechnologies)

	return report, nil
}

func capacityLevel(experts int) string {
	switch {
	case experts >= 3:
		return "high"
	case experts >= 1:
		return "medium"
	default:
		return "low"
	}
}

// riskLevel: medium is only reachable when the caller raises the expert
// threshold above 2.
func riskLevel(experts int) string {
	switch experts {
	case 0:
		return "critical"
	case 1:
		return "high"
	default:
		return "medium"
	}
}

func recommendation(experts int, bestLevel float64) string {
	switch {
	case experts == 0 && bestLevel >= 3:
		return "train intermediate collaborators or hire an expert"
	case experts == 0:
		return "hire an expert or train the team from scratch"
	case experts == 1:
		return "single point of failure - grow a second expert"
	default:
		return "acceptable coverage"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
