package usecase

import (
	"context"
	"errors"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrRelationNotFound = errors.New("relation not found")

// RelationUsecase manages the three payload-free link pairs. Linking an
// already linked pair is an idempotent no-op.
type RelationUsecase interface {
	LinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error
	UnlinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error
	ListTechnologyTypes(ctx context.Context) ([]repository.TechnologyTypeLink, error)

	LinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error
	UnlinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error
	ListProjectTechnologies(ctx context.Context) ([]repository.ProjectTechnologyLink, error)

	LinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error
	UnlinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error
	ListProjectCollaborators(ctx context.Context) ([]repository.ProjectCollaboratorLink, error)
}

type Relations struct {
	repo   repository.RelationRepository
	cache  Cache
	logger *zap.Logger
}

func NewRelationUsecase(repo repository.RelationRepository, cache Cache, logger *zap.Logger) *Relations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relations{repo: repo, cache: cache, logger: logger}
}

func (u *Relations) LinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error {
	return u.mutate(ctx, u.repo.LinkTechnologyType(ctx, technologyID, typeID))
}

func (u *Relations) UnlinkTechnologyType(ctx context.Context, technologyID, typeID uuid.UUID) error {
	return u.mutate(ctx, u.repo.UnlinkTechnologyType(ctx, technologyID, typeID))
}

func (u *Relations) ListTechnologyTypes(ctx context.Context) ([]repository.TechnologyTypeLink, error) {
	out, err := u.repo.ListTechnologyTypes(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Relations) LinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error {
	return u.mutate(ctx, u.repo.LinkProjectTechnology(ctx, projectID, technologyID))
}

func (u *Relations) UnlinkProjectTechnology(ctx context.Context, projectID, technologyID uuid.UUID) error {
	return u.mutate(ctx, u.repo.UnlinkProjectTechnology(ctx, projectID, technologyID))
}

func (u *Relations) ListProjectTechnologies(ctx context.Context) ([]repository.ProjectTechnologyLink, error) {
	out, err := u.repo.ListProjectTechnologies(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Relations) LinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error {
	return u.mutate(ctx, u.repo.LinkProjectCollaborator(ctx, projectID, collaboratorID))
}

func (u *Relations) UnlinkProjectCollaborator(ctx context.Context, projectID, collaboratorID uuid.UUID) error {
	return u.mutate(ctx, u.repo.UnlinkProjectCollaborator(ctx, projectID, collaboratorID))
}

func (u *Relations) ListProjectCollaborators(ctx context.Context) ([]repository.ProjectCollaboratorLink, error) {
	out, err := u.repo.ListProjectCollaborators(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Relations) mutate(ctx context.Context, err error) error {
	if err != nil {
		if errors.Is(err, repository.ErrRelationNotFound) {
			return ErrRelationNotFound
		}
		if repository.IsForeignKeyViolation(err) {
			return ErrInvalidInput
		}
		return ErrInternal
	}
	invalidateAggregates(ctx, u.cache, u.logger)
	return nil
}
