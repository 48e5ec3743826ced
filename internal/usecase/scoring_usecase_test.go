package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type mockCompetenceRepo struct {
	items   []repository.Competence
	updated map[uuid.UUID]float64
	failOn  uuid.UUID
}

func newMockCompetenceRepo(items ...repository.Competence) *mockCompetenceRepo {
	return &mockCompetenceRepo{items: items, updated: make(map[uuid.UUID]float64)}
}

func (m *mockCompetenceRepo) FindAll(context.Context) ([]repository.Competence, error) {
	return m.items, nil
}
func (m *mockCompetenceRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Competence, error) {
	for _, c := range m.items {
		if c.ID == id {
			if level, ok := m.updated[id]; ok {
				c.ComputedLevel = level
			}
			return c, nil
		}
	}
	return repository.Competence{}, repository.ErrCompetenceNotFound
}
func (m *mockCompetenceRepo) FindByCollaborator(_ context.Context, collaboratorID uuid.UUID) ([]repository.Competence, error) {
	out := make([]repository.Competence, 0)
	for _, c := range m.items {
		if c.CollaboratorID == collaboratorID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *mockCompetenceRepo) FindByTechnology(context.Context, uuid.UUID) ([]repository.Competence, error) {
	return nil, nil
}
func (m *mockCompetenceRepo) FindByPair(context.Context, uuid.UUID, uuid.UUID) (repository.Competence, error) {
	return repository.Competence{}, repository.ErrCompetenceNotFound
}
func (m *mockCompetenceRepo) Create(_ context.Context, c repository.Competence) (repository.Competence, error) {
	return c, nil
}
func (m *mockCompetenceRepo) UpdateLevels(_ context.Context, id uuid.UUID, declaredLevel int, computedLevel float64) (repository.Competence, error) {
	for _, c := range m.items {
		if c.ID == id {
			c.DeclaredLevel = declaredLevel
			c.ComputedLevel = computedLevel
			return c, nil
		}
	}
	return repository.Competence{}, repository.ErrCompetenceNotFound
}
func (m *mockCompetenceRepo) UpdateComputedLevel(_ context.Context, id uuid.UUID, level float64) error {
	if id == m.failOn {
		return errors.New("write failed")
	}
	m.updated[id] = level
	return nil
}
func (m *mockCompetenceRepo) Delete(context.Context, uuid.UUID) error { return nil }

type mockHistoryRepo struct {
	byPair map[uuid.UUID][]repository.HistoryEntry
}

func (m mockHistoryRepo) FindAll(context.Context) ([]repository.HistoryEntry, error) {
	return nil, nil
}
func (m mockHistoryRepo) FindByID(context.Context, uuid.UUID) (repository.HistoryEntry, error) {
	return repository.HistoryEntry{}, repository.ErrHistoryNotFound
}
func (m mockHistoryRepo) FindByPair(_ context.Context, collaboratorID, _ uuid.UUID) ([]repository.HistoryEntry, error) {
	return m.byPair[collaboratorID], nil
}
func (m mockHistoryRepo) FindByProject(context.Context, uuid.UUID) ([]repository.HistoryEntry, error) {
	return nil, nil
}
func (m mockHistoryRepo) FindByCollaborator(context.Context, uuid.UUID) ([]repository.HistoryEntry, error) {
	return nil, nil
}
func (m mockHistoryRepo) FindByTechnology(context.Context, uuid.UUID) ([]repository.HistoryEntry, error) {
	return nil, nil
}
func (m mockHistoryRepo) Create(_ context.Context, h repository.HistoryEntry) (repository.HistoryEntry, error) {
	return h, nil
}
func (m mockHistoryRepo) Update(_ context.Context, h repository.HistoryEntry) (repository.HistoryEntry, error) {
	return h, nil
}
func (m mockHistoryRepo) Delete(context.Context, uuid.UUID) error { return nil }

func TestScoring_RecomputeAll_IsolatesFailures(t *testing.T) {
	good := repository.Competence{ID: uuid.New(), CollaboratorID: uuid.New(), TechnologyID: uuid.New(), DeclaredLevel: 3}
	bad := repository.Competence{ID: uuid.New(), CollaboratorID: uuid.New(), TechnologyID: uuid.New(), DeclaredLevel: 2}

	repo := newMockCompetenceRepo(good, bad)
	repo.failOn = bad.ID

	uc := NewScoringUsecase(repo, mockHistoryRepo{}, nil, nil)
	result, err := uc.RecomputeAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Updated != 1 {
		t.Fatalf("expected 1 updated, got %d", result.Updated)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	// No usage history: the computed level equals the declared one.
	if repo.updated[good.ID] != 3 {
		t.Fatalf("expected computed 3, got %v", repo.updated[good.ID])
	}
}

func TestScoring_RecomputeAll_UsesHistory(t *testing.T) {
	comp := repository.Competence{ID: uuid.New(), CollaboratorID: uuid.New(), TechnologyID: uuid.New(), DeclaredLevel: 2}
	end := "2024-06"
	repo := newMockCompetenceRepo(comp)
	history := mockHistoryRepo{byPair: map[uuid.UUID][]repository.HistoryEntry{
		comp.CollaboratorID: {{EndPeriod: &end}},
	}}

	uc := NewScoringUsecase(repo, history, nil, nil)
	uc.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

	result, err := uc.RecomputeAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Updated != 1 {
		t.Fatalf("expected 1 updated, got %+v", result)
	}
	// declared 2, one row ending 12 months back: 2*0.3 + 1*0.4 + 4*0.3 = 2.2.
	if repo.updated[comp.ID] != 2.2 {
		t.Fatalf("expected 2.2, got %v", repo.updated[comp.ID])
	}
}

func TestScoring_RecomputeCollaborator_NoCompetences(t *testing.T) {
	uc := NewScoringUsecase(newMockCompetenceRepo(), mockHistoryRepo{}, nil, nil)
	_, err := uc.RecomputeCollaborator(context.Background(), uuid.New())
	if !errors.Is(err, ErrNoCompetences) {
		t.Fatalf("expected ErrNoCompetences, got %v", err)
	}
}

func TestScoring_RecomputeCompetence_NotFound(t *testing.T) {
	uc := NewScoringUsecase(newMockCompetenceRepo(), mockHistoryRepo{}, nil, nil)
	_, err := uc.RecomputeCompetence(context.Background(), uuid.New())
	if !errors.Is(err, ErrCompetenceNotFound) {
		t.Fatalf("expected ErrCompetenceNotFound, got %v", err)
	}
}

func TestScoring_RecomputeCompetence_ReturnsUpdatedRecord(t *testing.T) {
	comp := repository.Competence{ID: uuid.New(), CollaboratorID: uuid.New(), TechnologyID: uuid.New(), DeclaredLevel: 4, ComputedLevel: 4}
	repo := newMockCompetenceRepo(comp)

	uc := NewScoringUsecase(repo, mockHistoryRepo{}, nil, nil)
	got, err := uc.RecomputeCompetence(context.Background(), comp.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ComputedLevel != 4 {
		t.Fatalf("expected computed 4, got %v", got.ComputedLevel)
	}
}
