package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTechnologyNotFound = errors.New("technology not found")
	ErrTypeNotFound       = errors.New("technology type not found")
)

type TechnologyUsecase interface {
	List(ctx context.Context) ([]repository.Technology, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Technology, error)
	Create(ctx context.Context, name string) (repository.Technology, error)
	Update(ctx context.Context, id uuid.UUID, name string) (repository.Technology, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Technologies struct {
	repo   repository.TechnologyRepository
	cache  Cache
	logger *zap.Logger
}

func NewTechnologyUsecase(repo repository.TechnologyRepository, cache Cache, logger *zap.Logger) *Technologies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Technologies{repo: repo, cache: cache, logger: logger}
}

func (u *Technologies) List(ctx context.Context) ([]repository.Technology, error) {
	out, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Technologies) Get(ctx context.Context, id uuid.UUID) (repository.Technology, error) {
	t, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTechnologyNotFound) {
			return repository.Technology{}, ErrTechnologyNotFound
		}
		return repository.Technology{}, ErrInternal
	}
	return t, nil
}

func (u *Technologies) Create(ctx context.Context, name string) (repository.Technology, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Technology{}, ErrInvalidInput
	}

	t, err := u.repo.Create(ctx, name)
	if err != nil {
		return repository.Technology{}, ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return t, nil
}

func (u *Technologies) Update(ctx context.Context, id uuid.UUID, name string) (repository.Technology, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Technology{}, ErrInvalidInput
	}

	t, err := u.repo.Update(ctx, id, name)
	if err != nil {
		if errors.Is(err, repository.ErrTechnologyNotFound) {
			return repository.Technology{}, ErrTechnologyNotFound
		}
		return repository.Technology{}, ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return t, nil
}

func (u *Technologies) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTechnologyNotFound) {
			return ErrTechnologyNotFound
		}
		return ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return nil
}

type TypeUsecase interface {
	List(ctx context.Context) ([]repository.TechnologyType, error)
	Get(ctx context.Context, id uuid.UUID) (repository.TechnologyType, error)
	Create(ctx context.Context, name string) (repository.TechnologyType, error)
	Update(ctx context.Context, id uuid.UUID, name string) (repository.TechnologyType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Types struct {
	repo   repository.TypeRepository
	logger *zap.Logger
}

func NewTypeUsecase(repo repository.TypeRepository, logger *zap.Logger) *Types {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Types{repo: repo, logger: logger}
}

func (u *Types) List(ctx context.Context) ([]repository.TechnologyType, error) {
	out, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Types) Get(ctx context.Context, id uuid.UUID) (repository.TechnologyType, error) {
	t, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTypeNotFound) {
			return repository.TechnologyType{}, ErrTypeNotFound
		}
		return repository.TechnologyType{}, ErrInternal
	}
	return t, nil
}

func (u *Types) Create(ctx context.Context, name string) (repository.TechnologyType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.TechnologyType{}, ErrInvalidInput
	}

	t, err := u.repo.Create(ctx, name)
	if err != nil {
		return repository.TechnologyType{}, ErrInternal
	}
	return t, nil
}

func (u *Types) Update(ctx context.Context, id uuid.UUID, name string) (repository.TechnologyType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.TechnologyType{}, ErrInvalidInput
	}

	t, err := u.repo.Update(ctx, id, name)
	if err != nil {
		if errors.Is(err, repository.ErrTypeNotFound) {
			return repository.TechnologyType{}, ErrTypeNotFound
		}
		return repository.TechnologyType{}, ErrInternal
	}
	return t, nil
}

func (u *Types) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTypeNotFound) {
			return ErrTypeNotFound
		}
		return ErrInternal
	}
	return nil
}
