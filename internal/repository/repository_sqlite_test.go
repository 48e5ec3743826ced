package repository

import (
	"context"
	"testing"

	"skill-matrix/internal/database"
	"skill-matrix/internal/database/schema"
	"skill-matrix/internal/database/sqlite"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, schema.Provision(context.Background(), db, schema.DialectSQLite))
	return db
}

func TestCollaboratorRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresCollaboratorRepository(newTestDB(t))

	created, err := repo.Create(ctx, "Jane", "Doe")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane", got.FirstName)

	byName, err := repo.FindByName(ctx, "Jane", "Doe")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	updated, err := repo.Update(ctx, created.ID, "Janet", "Doe")
	require.NoError(t, err)
	require.Equal(t, "Janet", updated.FirstName)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrCollaboratorNotFound)
	require.ErrorIs(t, repo.Delete(ctx, created.ID), ErrCollaboratorNotFound)
}

func TestCompetenceRepository_DuplicatePair(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostgresCompetenceRepository(db)

	collaboratorID, technologyID := uuid.New(), uuid.New()
	_, err := repo.Create(ctx, Competence{CollaboratorID: collaboratorID, TechnologyID: technologyID, DeclaredLevel: 3, ComputedLevel: 3})
	require.NoError(t, err)

	_, err = repo.Create(ctx, Competence{CollaboratorID: collaboratorID, TechnologyID: technologyID, DeclaredLevel: 4, ComputedLevel: 4})
	require.ErrorIs(t, err, ErrCompetenceExists)
}

func TestCompetenceRepository_UpdateComputedLevel(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresCompetenceRepository(newTestDB(t))

	created, err := repo.Create(ctx, Competence{CollaboratorID: uuid.New(), TechnologyID: uuid.New(), DeclaredLevel: 2, ComputedLevel: 2})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateComputedLevel(ctx, created.ID, 3.7))
	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 3.7, got.ComputedLevel)
	require.Equal(t, 2, got.DeclaredLevel)

	require.ErrorIs(t, repo.UpdateComputedLevel(ctx, uuid.New(), 1), ErrCompetenceNotFound)
}

func TestHistoryRepository_FindByPair(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresHistoryRepository(newTestDB(t))

	collaboratorID, technologyID, projectID := uuid.New(), uuid.New(), uuid.New()
	end := "2024-06"
	six := 6

	first, err := repo.Create(ctx, HistoryEntry{
		ProjectID:      projectID,
		TechnologyID:   technologyID,
		CollaboratorID: collaboratorID,
		EndPeriod:      &end,
		DurationMonths: &six,
	})
	require.NoError(t, err)

	// Same triple twice over: both rows count for scoring.
	_, err = repo.Create(ctx, HistoryEntry{
		ProjectID:      projectID,
		TechnologyID:   technologyID,
		CollaboratorID: collaboratorID,
	})
	require.NoError(t, err)

	entries, err := repo.FindByPair(ctx, collaboratorID, technologyID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndPeriod)
	require.Equal(t, "2024-06", *got.EndPeriod)
	require.NotNil(t, got.DurationMonths)
	require.Equal(t, 6, *got.DurationMonths)

	none, err := repo.FindByPair(ctx, collaboratorID, uuid.New())
	require.NoError(t, err)
	require.Empty(t, none)
}

// seedAnalytics loads a small fixed roster:
//
//	Go:    Jane 4.5 (expert), Bob 1.5 (beginner)
//	Kafka: Bob 3.4 (intermediate)
//	COBOL: nobody
func seedAnalytics(t *testing.T, db database.DB) {
	t.Helper()
	ctx := context.Background()

	collaborators := NewPostgresCollaboratorRepository(db)
	technologies := NewPostgresTechnologyRepository(db)
	competences := NewPostgresCompetenceRepository(db)

	jane, err := collaborators.Create(ctx, "Jane", "Doe")
	require.NoError(t, err)
	bob, err := collaborators.Create(ctx, "Bob", "Smith")
	require.NoError(t, err)

	goTech, err := technologies.Create(ctx, "Go")
	require.NoError(t, err)
	kafka, err := technologies.Create(ctx, "Kafka")
	require.NoError(t, err)
	_, err = technologies.Create(ctx, "COBOL")
	require.NoError(t, err)

	seed := []Competence{
		{CollaboratorID: jane.ID, TechnologyID: goTech.ID, DeclaredLevel: 5, ComputedLevel: 4.5},
		{CollaboratorID: bob.ID, TechnologyID: goTech.ID, DeclaredLevel: 2, ComputedLevel: 1.5},
		{CollaboratorID: bob.ID, TechnologyID: kafka.ID, DeclaredLevel: 3, ComputedLevel: 3.4},
	}
	for _, c := range seed {
		_, err := competences.Create(ctx, c)
		require.NoError(t, err)
	}
}

func TestAnalytics_Gaps(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)
	analytics := NewPostgresAnalyticsRepository(db)

	gaps, err := analytics.Gaps(ctx, 2)
	require.NoError(t, err)
	require.Len(t, gaps, 3)

	// Ordered worst first: no holders, then no expert, then one expert.
	require.Equal(t, "COBOL", gaps[0].Technology)
	require.Equal(t, 0, gaps[0].Experts)
	require.Equal(t, 0, gaps[0].Collaborators)

	require.Equal(t, "Kafka", gaps[1].Technology)
	require.Equal(t, 0, gaps[1].Experts)
	require.Equal(t, 3.4, gaps[1].BestLevel)

	// One expert at 4.5 is a high-risk gap, not a critical one.
	require.Equal(t, "Go", gaps[2].Technology)
	require.Equal(t, 1, gaps[2].Experts)

	// Threshold 1 keeps only the expert-free technologies.
	gaps, err = analytics.Gaps(ctx, 1)
	require.NoError(t, err)
	require.Len(t, gaps, 2)
}

func TestAnalytics_AtRiskExcludesUnheldTechnologies(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)
	analytics := NewPostgresAnalyticsRepository(db)

	rows, err := analytics.AtRisk(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Kafka", rows[0].Technology)
	require.Equal(t, "Go", rows[1].Technology)
	require.Equal(t, 4.5, rows[1].BestLevel)
}

func TestAnalytics_CapacityBuckets(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)
	analytics := NewPostgresAnalyticsRepository(db)

	rows, err := analytics.Capacity(ctx, 1.0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	goRow := rows[0]
	require.Equal(t, "Go", goRow.Technology)
	require.Equal(t, 2, goRow.Collaborators)
	require.Equal(t, 1, goRow.Experts)
	require.Equal(t, 0, goRow.Intermediates)
	require.Equal(t, 1, goRow.Beginners)
	require.Equal(t, 3.0, goRow.AvgLevel)

	// Raising the floor drops Bob's Go rating out of the aggregate.
	rows, err = analytics.Capacity(ctx, 3.0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 1, rows[0].Collaborators)
	require.Equal(t, 4.5, rows[0].MinLevel)
}

func TestAnalytics_HoldersByTechnologyName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)
	analytics := NewPostgresAnalyticsRepository(db)

	holders, err := analytics.HoldersByTechnologyName(ctx, "Go", 5)
	require.NoError(t, err)
	require.Len(t, holders, 2)
	require.Equal(t, "Jane", holders[0].FirstName)
	require.Equal(t, 4.5, holders[0].ComputedLevel)

	holders, err = analytics.HoldersByTechnologyName(ctx, "COBOL", 5)
	require.NoError(t, err)
	require.Empty(t, holders)
}

func TestAnalytics_MatrixCellsIncludesEmptyCollaborators(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)

	// Ann holds nothing but must still appear as a matrix row.
	_, err := NewPostgresCollaboratorRepository(db).Create(ctx, "Ann", "Lee")
	require.NoError(t, err)

	analytics := NewPostgresAnalyticsRepository(db)
	cells, err := analytics.MatrixCells(ctx, MatrixFilter{})
	require.NoError(t, err)
	require.Len(t, cells, 4)

	var annSeen bool
	for _, c := range cells {
		if c.FirstName == "Ann" {
			annSeen = true
			require.Nil(t, c.TechnologyName)
			require.Nil(t, c.ComputedLevel)
		}
	}
	require.True(t, annSeen)
}

func TestAnalytics_MatrixCellsFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)
	analytics := NewPostgresAnalyticsRepository(db)

	cells, err := analytics.MatrixCells(ctx, MatrixFilter{TechnologyName: "kaf", CaseInsensitive: true})
	require.NoError(t, err)
	require.Len(t, cells, 1)
	require.Equal(t, "Kafka", *cells[0].TechnologyName)

	minLevel := 3.0
	cells, err = analytics.MatrixCells(ctx, MatrixFilter{MinComputedLevel: &minLevel})
	require.NoError(t, err)
	require.Len(t, cells, 2)
}

func TestAnalytics_Overview(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedAnalytics(t, db)
	analytics := NewPostgresAnalyticsRepository(db)

	ov, err := analytics.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, ov.TotalCollaborators)
	require.Equal(t, 3, ov.TotalTechnologies)
	require.Equal(t, 3, ov.TotalCompetences)
	require.Equal(t, 0, ov.TotalProjects)
	require.InDelta(t, 3.133, ov.AvgComputedLevel, 0.001)
}

func TestRelationRepository_LinkUnlink(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostgresRelationRepository(db)

	projectID, technologyID := uuid.New(), uuid.New()
	require.NoError(t, repo.LinkProjectTechnology(ctx, projectID, technologyID))
	// Linking twice is idempotent, not an error.
	require.NoError(t, repo.LinkProjectTechnology(ctx, projectID, technologyID))

	links, err := repo.ListProjectTechnologies(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, projectID, links[0].ProjectID)

	require.NoError(t, repo.UnlinkProjectTechnology(ctx, projectID, technologyID))
	require.ErrorIs(t, repo.UnlinkProjectTechnology(ctx, projectID, technologyID), ErrRelationNotFound)
}
