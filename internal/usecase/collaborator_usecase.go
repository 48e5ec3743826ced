package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CollaboratorInput struct {
	FirstName string
	LastName  string
}

type CollaboratorUsecase interface {
	List(ctx context.Context) ([]repository.Collaborator, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Collaborator, error)
	Create(ctx context.Context, in CollaboratorInput) (repository.Collaborator, error)
	Update(ctx context.Context, id uuid.UUID, in CollaboratorInput) (repository.Collaborator, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Collaborators struct {
	repo   repository.CollaboratorRepository
	cache  Cache
	logger *zap.Logger
}

func NewCollaboratorUsecase(repo repository.CollaboratorRepository, cache Cache, logger *zap.Logger) *Collaborators {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collaborators{repo: repo, cache: cache, logger: logger}
}

func (u *Collaborators) List(ctx context.Context) ([]repository.Collaborator, error) {
	out, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Collaborators) Get(ctx context.Context, id uuid.UUID) (repository.Collaborator, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return repository.Collaborator{}, ErrCollaboratorNotFound
		}
		return repository.Collaborator{}, ErrInternal
	}
	return c, nil
}

func (u *Collaborators) Create(ctx context.Context, in CollaboratorInput) (repository.Collaborator, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return repository.Collaborator{}, ErrInvalidInput
	}

	c, err := u.repo.Create(ctx, first, last)
	if err != nil {
		return repository.Collaborator{}, ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return c, nil
}

func (u *Collaborators) Update(ctx context.Context, id uuid.UUID, in CollaboratorInput) (repository.Collaborator, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return repository.Collaborator{}, ErrInvalidInput
	}

	c, err := u.repo.Update(ctx, id, first, last)
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return repository.Collaborator{}, ErrCollaboratorNotFound
		}
		return repository.Collaborator{}, ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return c, nil
}

func (u *Collaborators) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return ErrCollaboratorNotFound
		}
		return ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return nil
}
