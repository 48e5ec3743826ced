package usecase

import (
	"context"
	"testing"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func TestMatrix_DensifiesGrid(t *testing.T) {
	jane, bob := uuid.New(), uuid.New()
	goID, pgID := uuid.New(), uuid.New()

	uc := NewMatrixUsecase(mockAnalyticsRepo{cells: []repository.MatrixCell{
		{CollaboratorID: jane, FirstName: "Jane", LastName: "Doe", TechnologyID: &goID, TechnologyName: strPtr("Go"), DeclaredLevel: intPtr(4), ComputedLevel: floatPtr(4.2)},
		{CollaboratorID: jane, FirstName: "Jane", LastName: "Doe", TechnologyID: &pgID, TechnologyName: strPtr("Postgres"), DeclaredLevel: intPtr(3), ComputedLevel: floatPtr(2.8)},
		{CollaboratorID: bob, FirstName: "Bob", LastName: "Smith", TechnologyID: &goID, TechnologyName: strPtr("Go"), DeclaredLevel: intPtr(2), ComputedLevel: floatPtr(1.5)},
	}}, nil, true, nil)

	report, err := uc.Matrix(context.Background(), MatrixQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.TotalCollaborators != 2 || report.TotalTechnologies != 2 {
		t.Fatalf("unexpected totals: %+v", report)
	}

	// Bob never recorded Postgres; the grid still carries the cell.
	var bobRow MatrixRowView
	for _, r := range report.Rows {
		if r.CollaboratorID == bob {
			bobRow = r
		}
	}
	if len(bobRow.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(bobRow.Cells))
	}
	pg := bobRow.Cells["Postgres"]
	if pg.Color != ColorUnrated || pg.EffectiveLevel != nil {
		t.Fatalf("expected unrated cell, got %+v", pg)
	}
	if bobRow.Cells["Go"].Color != ColorLow {
		t.Fatalf("expected low color, got %+v", bobRow.Cells["Go"])
	}
}

func TestMatrix_CollaboratorWithoutCompetencesStillListed(t *testing.T) {
	lone := uuid.New()
	uc := NewMatrixUsecase(mockAnalyticsRepo{cells: []repository.MatrixCell{
		{CollaboratorID: lone, FirstName: "Ann", LastName: "Lee"},
	}}, nil, true, nil)

	report, err := uc.Matrix(context.Background(), MatrixQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.TotalCollaborators != 1 || report.TotalTechnologies != 0 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if len(report.Rows[0].Cells) != 0 {
		t.Fatalf("expected no cells, got %+v", report.Rows[0].Cells)
	}
}

func TestBuildCell_EffectiveLevelFallsBackToDeclared(t *testing.T) {
	cell := buildCell(intPtr(4), nil)
	if cell.EffectiveLevel == nil || *cell.EffectiveLevel != 4 {
		t.Fatalf("expected effective 4, got %+v", cell)
	}
	if cell.Color != ColorHigh {
		t.Fatalf("expected high, got %q", cell.Color)
	}

	cell = buildCell(intPtr(4), floatPtr(2.5))
	if *cell.EffectiveLevel != 2.5 || cell.Color != ColorMedium {
		t.Fatalf("computed should win: %+v", cell)
	}

	cell = buildCell(nil, nil)
	if cell.Color != ColorUnrated {
		t.Fatalf("expected unrated, got %q", cell.Color)
	}
}

func TestMatrix_Simple(t *testing.T) {
	jane := uuid.New()
	goID := uuid.New()
	uc := NewMatrixUsecase(mockAnalyticsRepo{cells: []repository.MatrixCell{
		{CollaboratorID: jane, FirstName: "Jane", LastName: "Doe", TechnologyID: &goID, TechnologyName: strPtr("Go"), DeclaredLevel: intPtr(4), ComputedLevel: floatPtr(4.2)},
	}}, nil, true, nil)

	report, err := uc.Simple(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.TotalCollaborators != 1 {
		t.Fatalf("unexpected total: %d", report.TotalCollaborators)
	}
	if report.Matrix["Jane Doe"]["Go"] != 4.2 {
		t.Fatalf("unexpected matrix: %+v", report.Matrix)
	}
}

func TestMatrix_HeatmapColors(t *testing.T) {
	uc := NewMatrixUsecase(mockAnalyticsRepo{heatmap: []repository.HeatmapRow{
		{Collaborator: "Jane Doe", Technology: "Go", Level: 4.5},
		{Collaborator: "Bob Smith", Technology: "Go", Level: 2.0},
		{Collaborator: "Ann Lee", Technology: "Redis", Level: 1.2},
	}}, nil, true, nil)

	report, err := uc.Heatmap(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.TotalEntries != 3 {
		t.Fatalf("unexpected entries: %d", report.TotalEntries)
	}
	if report.Entries[0].Color != ColorHigh || report.Entries[1].Color != ColorMedium || report.Entries[2].Color != ColorLow {
		t.Fatalf("unexpected colors: %+v", report.Entries)
	}
	if len(report.Technologies) != 2 || report.Technologies[0] != "Go" || report.Technologies[1] != "Redis" {
		t.Fatalf("unexpected technologies: %+v", report.Technologies)
	}
}

func TestMatrix_HeatmapTopNWithEmptyStore(t *testing.T) {
	uc := NewMatrixUsecase(mockAnalyticsRepo{}, nil, true, nil)

	report, err := uc.Heatmap(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(report.Entries) != 0 || len(report.Technologies) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
