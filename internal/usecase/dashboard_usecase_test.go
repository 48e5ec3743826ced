package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type mockCollaboratorRepo struct {
	items []repository.Collaborator
}

func (m mockCollaboratorRepo) FindAll(context.Context) ([]repository.Collaborator, error) {
	return m.items, nil
}
func (m mockCollaboratorRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Collaborator, error) {
	for _, c := range m.items {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Collaborator{}, repository.ErrCollaboratorNotFound
}
func (m mockCollaboratorRepo) FindByName(context.Context, string, string) (repository.Collaborator, error) {
	return repository.Collaborator{}, repository.ErrCollaboratorNotFound
}
func (m mockCollaboratorRepo) Create(_ context.Context, firstName, lastName string) (repository.Collaborator, error) {
	return repository.Collaborator{ID: uuid.New(), FirstName: firstName, LastName: lastName}, nil
}
func (m mockCollaboratorRepo) Update(context.Context, uuid.UUID, string, string) (repository.Collaborator, error) {
	return repository.Collaborator{}, repository.ErrCollaboratorNotFound
}
func (m mockCollaboratorRepo) Delete(context.Context, uuid.UUID) error { return nil }

func TestDashboard_Overview_RoundsAverage(t *testing.T) {
	uc := NewDashboardUsecase(mockAnalyticsRepo{overview: repository.Overview{
		TotalCollaborators: 4,
		TotalTechnologies:  7,
		TotalCompetences:   12,
		TotalProjects:      2,
		AvgComputedLevel:   3.14159,
	}}, mockCollaboratorRepo{}, nil, nil)

	report, err := uc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.AvgComputedLevel != 3.14 {
		t.Fatalf("expected 3.14, got %v", report.AvgComputedLevel)
	}
	if report.TotalCompetences != 12 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestDashboard_AtRisk_ClassifiesRisk(t *testing.T) {
	uc := NewDashboardUsecase(mockAnalyticsRepo{atRisk: []repository.AtRiskRow{
		{Technology: "Kafka", Collaborators: 2, Experts: 0, AvgLevel: 2.5, BestLevel: 3.2},
		{Technology: "Redis", Collaborators: 3, Experts: 1, AvgLevel: 3.0, BestLevel: 4.5},
	}}, mockCollaboratorRepo{}, nil, nil)

	report, err := uc.AtRisk(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.Total != 2 {
		t.Fatalf("expected 2, got %d", report.Total)
	}
	if report.Technologies[0].RiskLevel != "critical" || report.Technologies[1].RiskLevel != "high" {
		t.Fatalf("unexpected risk levels: %+v", report.Technologies)
	}
}

func TestDashboard_Radar_UnknownCollaborator(t *testing.T) {
	uc := NewDashboardUsecase(mockAnalyticsRepo{}, mockCollaboratorRepo{}, nil, nil)
	_, err := uc.Radar(context.Background(), uuid.New())
	if !errors.Is(err, ErrCollaboratorNotFound) {
		t.Fatalf("expected ErrCollaboratorNotFound, got %v", err)
	}
}

func TestDashboard_Radar_NoCompetencesIsEmptyNotError(t *testing.T) {
	jane := repository.Collaborator{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"}
	uc := NewDashboardUsecase(mockAnalyticsRepo{}, mockCollaboratorRepo{items: []repository.Collaborator{jane}}, nil, nil)

	report, err := uc.Radar(context.Background(), jane.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.Collaborator != "Jane Doe" || report.TotalAxes != 0 || len(report.Axes) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestDashboard_Statistics(t *testing.T) {
	uc := NewDashboardUsecase(mockAnalyticsRepo{
		levels: []repository.LevelDistributionRow{{Category: "beginner", Count: 3}, {Category: "expert", Count: 1}},
		usage:  []repository.ProjectUsageRow{{Technology: "Go", Projects: 4}},
		versat: []repository.VersatileRow{{Name: "Jane Doe", Technologies: 5, AvgLevel: 3.666}},
	}, mockCollaboratorRepo{}, nil, nil)

	report, err := uc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(report.LevelDistribution) != 2 || report.LevelDistribution[1].Category != "expert" {
		t.Fatalf("unexpected distribution: %+v", report.LevelDistribution)
	}
	if report.VersatileCollaborators[0].AvgLevel != 3.67 {
		t.Fatalf("avg not rounded: %+v", report.VersatileCollaborators)
	}
}

// limitRecorder captures the limits the breakdown queries are issued with.
type limitRecorder struct {
	mockAnalyticsRepo
	usageLimit  int
	versatLimit int
}

func (r *limitRecorder) TopProjectTechnologies(ctx context.Context, limit int) ([]repository.ProjectUsageRow, error) {
	r.usageLimit = limit
	return r.mockAnalyticsRepo.TopProjectTechnologies(ctx, limit)
}
func (r *limitRecorder) VersatileCollaborators(ctx context.Context, limit int) ([]repository.VersatileRow, error) {
	r.versatLimit = limit
	return r.mockAnalyticsRepo.VersatileCollaborators(ctx, limit)
}

func TestDashboard_Statistics_BreakdownLimit(t *testing.T) {
	repo := &limitRecorder{}
	uc := NewDashboardUsecase(repo, mockCollaboratorRepo{}, nil, nil)

	if _, err := uc.Statistics(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.usageLimit != 10 || repo.versatLimit != 10 {
		t.Fatalf("expected 10-row breakdowns, got usage=%d versatile=%d", repo.usageLimit, repo.versatLimit)
	}
}
