package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/domain/scoring"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidEndPeriod = errors.New("end period is not a recognized date")
)

type ProjectInput struct {
	Name           string
	EndPeriod      *string
	DurationMonths *int
}

type ProjectUsecase interface {
	List(ctx context.Context) ([]repository.Project, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Project, error)
	Create(ctx context.Context, in ProjectInput) (repository.Project, error)
	Update(ctx context.Context, id uuid.UUID, in ProjectInput) (repository.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Projects struct {
	repo   repository.ProjectRepository
	cache  Cache
	logger *zap.Logger
}

func NewProjectUsecase(repo repository.ProjectRepository, cache Cache, logger *zap.Logger) *Projects {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projects{repo: repo, cache: cache, logger: logger}
}

func (u *Projects) List(ctx context.Context) ([]repository.Project, error) {
	out, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Projects) Get(ctx context.Context, id uuid.UUID) (repository.Project, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return repository.Project{}, ErrProjectNotFound
		}
		return repository.Project{}, ErrInternal
	}
	return p, nil
}

func (u *Projects) Create(ctx context.Context, in ProjectInput) (repository.Project, error) {
	name, end, duration, err := normalizeProjectInput(in)
	if err != nil {
		return repository.Project{}, err
	}

	p, err := u.repo.Create(ctx, name, end, duration)
	if err != nil {
		return repository.Project{}, ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return p, nil
}

func (u *Projects) Update(ctx context.Context, id uuid.UUID, in ProjectInput) (repository.Project, error) {
	name, end, duration, err := normalizeProjectInput(in)
	if err != nil {
		return repository.Project{}, err
	}

	p, err := u.repo.Update(ctx, repository.Project{
		ID:             id,
		Name:           name,
		EndPeriod:      end,
		DurationMonths: duration,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return repository.Project{}, ErrProjectNotFound
		}
		return repository.Project{}, ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return p, nil
}

func (u *Projects) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return nil
}

// normalizeProjectInput rejects end periods the scoring engine could not
// parse later instead of letting them rot in the store.
func normalizeProjectInput(in ProjectInput) (string, *string, *int, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", nil, nil, ErrInvalidInput
	}

	end := in.EndPeriod
	if end != nil {
		v := strings.TrimSpace(*end)
		if v == "" {
			end = nil
		} else {
			if _, ok := scoring.ParsePeriod(v); !ok {
				return "", nil, nil, ErrInvalidEndPeriod
			}
			end = &v
		}
	}

	duration := in.DurationMonths
	if duration != nil && *duration < 0 {
		return "", nil, nil, ErrInvalidInput
	}
	return name, end, duration, nil
}
