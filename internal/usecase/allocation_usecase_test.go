package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

// mockAnalyticsRepo is shared by the allocation, matrix and dashboard tests.
type mockAnalyticsRepo struct {
	capacity []repository.CapacityRow
	gaps     []repository.GapRow
	atRisk   []repository.AtRiskRow
	cells    []repository.MatrixCell
	heatmap  []repository.HeatmapRow
	topIDs   []uuid.UUID
	holders  map[string][]repository.HolderRow
	overview repository.Overview
	levels   []repository.LevelDistributionRow
	usage    []repository.ProjectUsageRow
	versat   []repository.VersatileRow
	topTech  []repository.TopTechnologyRow
	radar    []repository.RadarRow
	err      error
}

func (m mockAnalyticsRepo) Capacity(context.Context, float64) ([]repository.CapacityRow, error) {
	return m.capacity, m.err
}
func (m mockAnalyticsRepo) Gaps(context.Context, int) ([]repository.GapRow, error) {
	return m.gaps, m.err
}
func (m mockAnalyticsRepo) AtRisk(context.Context, int) ([]repository.AtRiskRow, error) {
	return m.atRisk, m.err
}
func (m mockAnalyticsRepo) MatrixCells(context.Context, repository.MatrixFilter) ([]repository.MatrixCell, error) {
	return m.cells, m.err
}
func (m mockAnalyticsRepo) HeatmapRows(context.Context, []uuid.UUID) ([]repository.HeatmapRow, error) {
	return m.heatmap, m.err
}
func (m mockAnalyticsRepo) TopTechnologyIDs(context.Context, int) ([]uuid.UUID, error) {
	return m.topIDs, m.err
}
func (m mockAnalyticsRepo) HoldersByTechnologyName(_ context.Context, name string, _ int) ([]repository.HolderRow, error) {
	return m.holders[name], m.err
}
func (m mockAnalyticsRepo) Overview(context.Context) (repository.Overview, error) {
	return m.overview, m.err
}
func (m mockAnalyticsRepo) LevelDistribution(context.Context) ([]repository.LevelDistributionRow, error) {
	return m.levels, m.err
}
func (m mockAnalyticsRepo) TopProjectTechnologies(context.Context, int) ([]repository.ProjectUsageRow, error) {
	return m.usage, m.err
}
func (m mockAnalyticsRepo) VersatileCollaborators(context.Context, int) ([]repository.VersatileRow, error) {
	return m.versat, m.err
}
func (m mockAnalyticsRepo) TopTechnologies(context.Context, int) ([]repository.TopTechnologyRow, error) {
	return m.topTech, m.err
}
func (m mockAnalyticsRepo) Radar(context.Context, uuid.UUID) ([]repository.RadarRow, error) {
	return m.radar, m.err
}

func TestAllocation_Gaps_Classification(t *testing.T) {
	uc := NewAllocationUsecase(mockAnalyticsRepo{gaps: []repository.GapRow{
		{Technology: "COBOL", Collaborators: 0, Experts: 0, BestLevel: 0},
		{Technology: "Kafka", Collaborators: 3, Experts: 0, BestLevel: 3.4},
		{Technology: "Redis", Collaborators: 2, Experts: 1, BestLevel: 4.2},
	}}, nil, nil)

	report, err := uc.Gaps(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.TotalGaps != 3 || report.CriticalGaps != 2 || report.HighRiskGaps != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.Gaps[0].RiskLevel != "critical" || report.Gaps[2].RiskLevel != "high" {
		t.Fatalf("unexpected risk levels: %+v", report.Gaps)
	}
	if report.Gaps[0].Recommendation != "hire an expert or train the team from scratch" {
		t.Fatalf("unexpected recommendation: %q", report.Gaps[0].Recommendation)
	}
	if report.Gaps[1].Recommendation != "train intermediate collaborators or hire an expert" {
		t.Fatalf("unexpected recommendation: %q", report.Gaps[1].Recommendation)
	}
	if report.Gaps[2].Recommendation != "single point of failure - grow a second expert" {
		t.Fatalf("unexpected recommendation: %q", report.Gaps[2].Recommendation)
	}
}

func TestAllocation_Capacity_Buckets(t *testing.T) {
	uc := NewAllocationUsecase(mockAnalyticsRepo{capacity: []repository.CapacityRow{
		{Technology: "Go", Collaborators: 5, AvgLevel: 4.333, MinLevel: 3.1, MaxLevel: 5, Experts: 3, Intermediates: 2},
		{Technology: "Rust", Collaborators: 2, AvgLevel: 3.5, MinLevel: 3, MaxLevel: 4, Experts: 1, Intermediates: 1},
		{Technology: "Elm", Collaborators: 1, AvgLevel: 3, MinLevel: 3, MaxLevel: 3, Experts: 0, Intermediates: 1},
	}}, nil, nil)

	report, err := uc.Capacity(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.MinLevelFilter != DefaultCapacityFloor {
		t.Fatalf("expected default floor, got %v", report.MinLevelFilter)
	}
	if report.TotalTechnologies != 3 {
		t.Fatalf("expected 3 technologies, got %d", report.TotalTechnologies)
	}
	if report.Capacity[0].CapacityLevel != "high" || report.Capacity[1].CapacityLevel != "medium" || report.Capacity[2].CapacityLevel != "low" {
		t.Fatalf("unexpected capacity levels: %+v", report.Capacity)
	}
	if report.Capacity[0].AvgLevel != 4.33 {
		t.Fatalf("avg not rounded: %v", report.Capacity[0].AvgLevel)
	}
}

func TestAllocation_Suggest_GapsAndFits(t *testing.T) {
	jane, bob := uuid.New(), uuid.New()
	uc := NewAllocationUsecase(mockAnalyticsRepo{holders: map[string][]repository.HolderRow{
		"Go": {
			{CollaboratorID: jane, FirstName: "Jane", LastName: "Doe", DeclaredLevel: 5, ComputedLevel: 4.6},
			{CollaboratorID: bob, FirstName: "Bob", LastName: "Smith", DeclaredLevel: 3, ComputedLevel: 3.1},
		},
		"Kafka": {
			{CollaboratorID: bob, FirstName: "Bob", LastName: "Smith", DeclaredLevel: 3, ComputedLevel: 3.4},
		},
	}}, nil, nil)

	report, err := uc.Suggest(context.Background(), SuggestInput{Technologies: []string{"Go", "Kafka", "COBOL"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if report.TotalTechnologies != 3 || report.TechnologiesWithExperts != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}

	// COBOL: nobody holds it, so the technology still appears, empty.
	cobol, ok := report.SuggestionsByTechnology["COBOL"]
	if !ok || len(cobol) != 0 {
		t.Fatalf("expected empty COBOL suggestions, got %v (present=%v)", cobol, ok)
	}

	if len(report.Gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %+v", report.Gaps)
	}
	if report.Gaps[0].Technology != "Kafka" || report.Gaps[0].Reason != ReasonNoExpert {
		t.Fatalf("unexpected first gap: %+v", report.Gaps[0])
	}
	if report.Gaps[0].BestLevel == nil || *report.Gaps[0].BestLevel != 3.4 {
		t.Fatalf("expected best level 3.4, got %v", report.Gaps[0].BestLevel)
	}
	if report.Gaps[1].Technology != "COBOL" || report.Gaps[1].Reason != ReasonNoHolders {
		t.Fatalf("unexpected second gap: %+v", report.Gaps[1])
	}

	if !report.SuggestionsByTechnology["Go"][0].IsExpert || report.SuggestionsByTechnology["Go"][1].IsExpert {
		t.Fatalf("unexpected expert flags: %+v", report.SuggestionsByTechnology["Go"])
	}

	// Bob matched both requested technologies, so he outranks Jane overall.
	if len(report.BestOverallFits) != 2 {
		t.Fatalf("expected 2 fits, got %d", len(report.BestOverallFits))
	}
	best := report.BestOverallFits[0]
	if best.CollaboratorID != bob || best.TechnologiesMatched != 2 {
		t.Fatalf("unexpected best fit: %+v", best)
	}
	if best.TotalScore != 6.5 || best.AvgLevel != 3.25 {
		t.Fatalf("unexpected scores: %+v", best)
	}
	if best.MatchPercentage != 66.67 {
		t.Fatalf("unexpected match percentage: %v", best.MatchPercentage)
	}
}

func TestAllocation_Suggest_EmptyInput(t *testing.T) {
	uc := NewAllocationUsecase(mockAnalyticsRepo{}, nil, nil)
	if _, err := uc.Suggest(context.Background(), SuggestInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Suggest(context.Background(), SuggestInput{Technologies: []string{"", "  "}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank names, got %v", err)
	}
}

func TestAllocation_Suggest_IgnoresBlankNames(t *testing.T) {
	jane := uuid.New()
	uc := NewAllocationUsecase(mockAnalyticsRepo{holders: map[string][]repository.HolderRow{
		"Go": {
			{CollaboratorID: jane, FirstName: "Jane", LastName: "Doe", DeclaredLevel: 5, ComputedLevel: 4.6},
		},
	}}, nil, nil)

	report, err := uc.Suggest(context.Background(), SuggestInput{Technologies: []string{" Go ", "", "   "}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Blank entries do not count toward totals or the match denominator.
	if report.TotalTechnologies != 1 || report.TechnologiesWithExperts != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if len(report.SuggestionsByTechnology) != 1 {
		t.Fatalf("unexpected suggestion keys: %+v", report.SuggestionsByTechnology)
	}
	if len(report.BestOverallFits) != 1 || report.BestOverallFits[0].MatchPercentage != 100 {
		t.Fatalf("unexpected fits: %+v", report.BestOverallFits)
	}
}
