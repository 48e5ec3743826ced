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

var ErrHistoryNotFound = errors.New("history entry not found")

type HistoryInput struct {
	ProjectID      uuid.UUID
	TechnologyID   uuid.UUID
	CollaboratorID uuid.UUID
	StartDate      *string
	EndPeriod      *string
	DurationMonths *int
}

type HistoryUsecase interface {
	List(ctx context.Context) ([]repository.HistoryEntry, error)
	Get(ctx context.Context, id uuid.UUID) (repository.HistoryEntry, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]repository.HistoryEntry, error)
	ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]repository.HistoryEntry, error)
	Create(ctx context.Context, in HistoryInput) (repository.HistoryEntry, error)
	Update(ctx context.Context, id uuid.UUID, in HistoryInput) (repository.HistoryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Histories writes usage rows and keeps the scoring output in step: any
// accepted mutation rescans the touched (collaborator, technology) pair.
type Histories struct {
	repo          repository.HistoryRepository
	projects      repository.ProjectRepository
	technologies  repository.TechnologyRepository
	collaborators repository.CollaboratorRepository
	competences   repository.CompetenceRepository
	scoring       ScoringUsecase
	cache         Cache
	logger        *zap.Logger
}

func NewHistoryUsecase(
	repo repository.HistoryRepository,
	projects repository.ProjectRepository,
	technologies repository.TechnologyRepository,
	collaborators repository.CollaboratorRepository,
	competences repository.CompetenceRepository,
	scoring ScoringUsecase,
	cache Cache,
	logger *zap.Logger,
) *Histories {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Histories{
		repo:          repo,
		projects:      projects,
		technologies:  technologies,
		collaborators: collaborators,
		competences:   competences,
		scoring:       scoring,
		cache:         cache,
		logger:        logger,
	}
}

func (u *Histories) List(ctx context.Context) ([]repository.HistoryEntry, error) {
	out, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Histories) Get(ctx context.Context, id uuid.UUID) (repository.HistoryEntry, error) {
	h, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return repository.HistoryEntry{}, ErrHistoryNotFound
		}
		return repository.HistoryEntry{}, ErrInternal
	}
	return h, nil
}

func (u *Histories) ListByProject(ctx context.Context, projectID uuid.UUID) ([]repository.HistoryEntry, error) {
	out, err := u.repo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Histories) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]repository.HistoryEntry, error) {
	out, err := u.repo.FindByCollaborator(ctx, collaboratorID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Histories) Create(ctx context.Context, in HistoryInput) (repository.HistoryEntry, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return repository.HistoryEntry{}, err
	}

	h, err := u.repo.Create(ctx, repository.HistoryEntry{
		ProjectID:      in.ProjectID,
		TechnologyID:   in.TechnologyID,
		CollaboratorID: in.CollaboratorID,
		StartDate:      normalizeOptional(in.StartDate),
		EndPeriod:      normalizeOptional(in.EndPeriod),
		DurationMonths: in.DurationMonths,
	})
	if err != nil {
		return repository.HistoryEntry{}, ErrInternal
	}

	u.rescorePair(ctx, in.CollaboratorID, in.TechnologyID)
	return h, nil
}

func (u *Histories) Update(ctx context.Context, id uuid.UUID, in HistoryInput) (repository.HistoryEntry, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return repository.HistoryEntry{}, err
	}

	h, err := u.repo.Update(ctx, repository.HistoryEntry{
		ID:             id,
		ProjectID:      in.ProjectID,
		TechnologyID:   in.TechnologyID,
		CollaboratorID: in.CollaboratorID,
		StartDate:      normalizeOptional(in.StartDate),
		EndPeriod:      normalizeOptional(in.EndPeriod),
		DurationMonths: in.DurationMonths,
	})
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return repository.HistoryEntry{}, ErrHistoryNotFound
		}
		return repository.HistoryEntry{}, ErrInternal
	}

	u.rescorePair(ctx, in.CollaboratorID, in.TechnologyID)
	return h, nil
}

func (u *Histories) Delete(ctx context.Context, id uuid.UUID) error {
	h, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return ErrHistoryNotFound
		}
		return ErrInternal
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return ErrHistoryNotFound
		}
		return ErrInternal
	}

	u.rescorePair(ctx, h.CollaboratorID, h.TechnologyID)
	return nil
}

func (u *Histories) validateInput(ctx context.Context, in HistoryInput) error {
	if in.EndPeriod != nil {
		if v := strings.TrimSpace(*in.EndPeriod); v != "" {
			if _, ok := scoring.ParsePeriod(v); !ok {
				return ErrInvalidEndPeriod
			}
		}
	}
	if in.DurationMonths != nil && *in.DurationMonths < 0 {
		return ErrInvalidInput
	}

	if _, err := u.projects.FindByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	if _, err := u.technologies.FindByID(ctx, in.TechnologyID); err != nil {
		if errors.Is(err, repository.ErrTechnologyNotFound) {
			return ErrTechnologyNotFound
		}
		return ErrInternal
	}
	if _, err := u.collaborators.FindByID(ctx, in.CollaboratorID); err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return ErrCollaboratorNotFound
		}
		return ErrInternal
	}
	return nil
}

// rescorePair refreshes the competence backed by the touched history, when
// one exists. A collaborator can log usage for a technology they never
// declared; that is not an error, there is just nothing to rescore.
func (u *Histories) rescorePair(ctx context.Context, collaboratorID, technologyID uuid.UUID) {
	defer invalidateAggregates(ctx, u.cache, u.logger)

	if u.scoring == nil {
		return
	}
	comp, err := u.competences.FindByPair(ctx, collaboratorID, technologyID)
	if err != nil {
		if !errors.Is(err, repository.ErrCompetenceNotFound) {
			u.logger.Warn("competence lookup after history write failed", zap.Error(err))
		}
		return
	}
	if _, err := u.scoring.RecomputeCompetence(ctx, comp.ID); err != nil {
		u.logger.Warn("rescore after history write failed",
			zap.String("competence_id", comp.ID.String()),
			zap.Error(err),
		)
	}
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
