package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type mockTechnologyRepo struct {
	items []repository.Technology
}

func (m mockTechnologyRepo) FindAll(context.Context) ([]repository.Technology, error) {
	return m.items, nil
}
func (m mockTechnologyRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Technology, error) {
	for _, t := range m.items {
		if t.ID == id {
			return t, nil
		}
	}
	return repository.Technology{}, repository.ErrTechnologyNotFound
}
func (m mockTechnologyRepo) FindByName(context.Context, string) (repository.Technology, error) {
	return repository.Technology{}, repository.ErrTechnologyNotFound
}
func (m mockTechnologyRepo) Create(_ context.Context, name string) (repository.Technology, error) {
	return repository.Technology{ID: uuid.New(), Name: name}, nil
}
func (m mockTechnologyRepo) Update(context.Context, uuid.UUID, string) (repository.Technology, error) {
	return repository.Technology{}, repository.ErrTechnologyNotFound
}
func (m mockTechnologyRepo) Delete(context.Context, uuid.UUID) error { return nil }

func TestCompetences_Create_RejectsBadLevel(t *testing.T) {
	uc := NewCompetenceUsecase(newMockCompetenceRepo(), mockCollaboratorRepo{}, mockTechnologyRepo{}, nil, nil, nil)

	for _, level := range []int{0, 6, -1} {
		_, err := uc.Create(context.Background(), CompetenceInput{
			CollaboratorID: uuid.New(),
			TechnologyID:   uuid.New(),
			DeclaredLevel:  level,
		})
		if !errors.Is(err, ErrInvalidLevel) {
			t.Fatalf("level %d: expected ErrInvalidLevel, got %v", level, err)
		}
	}
}

func TestCompetences_Create_ChecksReferences(t *testing.T) {
	jane := repository.Collaborator{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"}
	goTech := repository.Technology{ID: uuid.New(), Name: "Go"}

	uc := NewCompetenceUsecase(
		newMockCompetenceRepo(),
		mockCollaboratorRepo{items: []repository.Collaborator{jane}},
		mockTechnologyRepo{items: []repository.Technology{goTech}},
		nil, nil, nil,
	)

	_, err := uc.Create(context.Background(), CompetenceInput{CollaboratorID: uuid.New(), TechnologyID: goTech.ID, DeclaredLevel: 3})
	if !errors.Is(err, ErrCollaboratorNotFound) {
		t.Fatalf("expected ErrCollaboratorNotFound, got %v", err)
	}

	_, err = uc.Create(context.Background(), CompetenceInput{CollaboratorID: jane.ID, TechnologyID: uuid.New(), DeclaredLevel: 3})
	if !errors.Is(err, ErrTechnologyNotFound) {
		t.Fatalf("expected ErrTechnologyNotFound, got %v", err)
	}

	created, err := uc.Create(context.Background(), CompetenceInput{CollaboratorID: jane.ID, TechnologyID: goTech.ID, DeclaredLevel: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Without a rescore pass the computed level starts at the declared one.
	if created.ComputedLevel != 3 {
		t.Fatalf("expected computed 3, got %v", created.ComputedLevel)
	}
}

func TestCompetences_UpdateDeclaredLevel_NotFound(t *testing.T) {
	uc := NewCompetenceUsecase(newMockCompetenceRepo(), mockCollaboratorRepo{}, mockTechnologyRepo{}, nil, nil, nil)
	_, err := uc.UpdateDeclaredLevel(context.Background(), uuid.New(), 3)
	if !errors.Is(err, ErrCompetenceNotFound) {
		t.Fatalf("expected ErrCompetenceNotFound, got %v", err)
	}
}
