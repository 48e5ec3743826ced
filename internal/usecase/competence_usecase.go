package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCompetenceExists = errors.New("competence already exists for this collaborator and technology")

type CompetenceInput struct {
	CollaboratorID uuid.UUID
	TechnologyID   uuid.UUID
	DeclaredLevel  int
}

type CompetenceUsecase interface {
	List(ctx context.Context) ([]repository.Competence, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Competence, error)
	ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]repository.Competence, error)
	ListByTechnology(ctx context.Context, technologyID uuid.UUID) ([]repository.Competence, error)
	Create(ctx context.Context, in CompetenceInput) (repository.Competence, error)
	UpdateDeclaredLevel(ctx context.Context, id uuid.UUID, declaredLevel int) (repository.Competence, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Competences owns the declared side of a competence; every accepted write
// immediately rescans the history so the computed side never lags a request.
type Competences struct {
	repo          repository.CompetenceRepository
	collaborators repository.CollaboratorRepository
	technologies  repository.TechnologyRepository
	scoring       ScoringUsecase
	cache         Cache
	logger        *zap.Logger
}

func NewCompetenceUsecase(
	repo repository.CompetenceRepository,
	collaborators repository.CollaboratorRepository,
	technologies repository.TechnologyRepository,
	scoring ScoringUsecase,
	cache Cache,
	logger *zap.Logger,
) *Competences {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Competences{
		repo:          repo,
		collaborators: collaborators,
		technologies:  technologies,
		scoring:       scoring,
		cache:         cache,
		logger:        logger,
	}
}

func (u *Competences) List(ctx context.Context) ([]repository.Competence, error) {
	out, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Competences) Get(ctx context.Context, id uuid.UUID) (repository.Competence, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompetenceNotFound) {
			return repository.Competence{}, ErrCompetenceNotFound
		}
		return repository.Competence{}, ErrInternal
	}
	return c, nil
}

func (u *Competences) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]repository.Competence, error) {
	out, err := u.repo.FindByCollaborator(ctx, collaboratorID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Competences) ListByTechnology(ctx context.Context, technologyID uuid.UUID) ([]repository.Competence, error) {
	out, err := u.repo.FindByTechnology(ctx, technologyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Competences) Create(ctx context.Context, in CompetenceInput) (repository.Competence, error) {
	if in.DeclaredLevel < 1 || in.DeclaredLevel > 5 {
		return repository.Competence{}, ErrInvalidLevel
	}
	if _, err := u.collaborators.FindByID(ctx, in.CollaboratorID); err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return repository.Competence{}, ErrCollaboratorNotFound
		}
		return repository.Competence{}, ErrInternal
	}
	if _, err := u.technologies.FindByID(ctx, in.TechnologyID); err != nil {
		if errors.Is(err, repository.ErrTechnologyNotFound) {
			return repository.Competence{}, ErrTechnologyNotFound
		}
		return repository.Competence{}, ErrInternal
	}

	c, err := u.repo.Create(ctx, repository.Competence{
		CollaboratorID: in.CollaboratorID,
		TechnologyID:   in.TechnologyID,
		DeclaredLevel:  in.DeclaredLevel,
		ComputedLevel:  float64(in.DeclaredLevel),
	})
	if err != nil {
		if errors.Is(err, repository.ErrCompetenceExists) {
			return repository.Competence{}, ErrCompetenceExists
		}
		return repository.Competence{}, ErrInternal
	}

	return u.rescore(ctx, c)
}

func (u *Competences) UpdateDeclaredLevel(ctx context.Context, id uuid.UUID, declaredLevel int) (repository.Competence, error) {
	if declaredLevel < 1 || declaredLevel > 5 {
		return repository.Competence{}, ErrInvalidLevel
	}

	c, err := u.repo.UpdateLevels(ctx, id, declaredLevel, float64(declaredLevel))
	if err != nil {
		if errors.Is(err, repository.ErrCompetenceNotFound) {
			return repository.Competence{}, ErrCompetenceNotFound
		}
		return repository.Competence{}, ErrInternal
	}

	return u.rescore(ctx, c)
}

func (u *Competences) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCompetenceNotFound) {
			return ErrCompetenceNotFound
		}
		return ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return nil
}

// rescore recomputes the freshly written record. A scoring failure is not a
// write failure: the record stays valid with computed = declared, so the
// error is logged and the record returned.
func (u *Competences) rescore(ctx context.Context, c repository.Competence) (repository.Competence, error) {
	if u.scoring == nil {
		invalidateAggregates(ctx, u.cache, u.logger)
		return c, nil
	}

	scored, err := u.scoring.RecomputeCompetence(ctx, c.ID)
	if err != nil {
		u.logger.Warn("rescore after competence write failed",
			zap.String("competence_id", c.ID.String()),
			zap.Error(err),
		)
		invalidateAggregates(ctx, u.cache, u.logger)
		return c, nil
	}
	return scored, nil
}
