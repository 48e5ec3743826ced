package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-matrix/internal/domain/scoring"
	"skill-matrix/internal/metrics"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCompetenceNotFound = errors.New("competence not found")

	// ErrNoCompetences is the not-found condition for a collaborator-scoped
	// recompute; it is reported on its own, never folded into the batch
	// error list.
	ErrNoCompetences = errors.New("no competences found for this collaborator")
)

type RecomputeResult struct {
	Updated int
	Errors  []string
}

type ScoringUsecase interface {
	RecomputeAll(ctx context.Context) (RecomputeResult, error)
	RecomputeCollaborator(ctx context.Context, collaboratorID uuid.UUID) (RecomputeResult, error)
	RecomputeCompetence(ctx context.Context, competenceID uuid.UUID) (repository.Competence, error)
	Parameters() scoring.Params
}

type Scoring struct {
	competences repository.CompetenceRepository
	history     repository.HistoryRepository
	cache       Cache
	params      scoring.Params
	logger      *zap.Logger

	now func() time.Time
}

func NewScoringUsecase(competences repository.CompetenceRepository, history repository.HistoryRepository, cache Cache, logger *zap.Logger) *Scoring {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scoring{
		competences: competences,
		history:     history,
		cache:       cache,
		params:      scoring.DefaultParams(),
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Scoring) Parameters() scoring.Params {
	return s.params
}

func (s *Scoring) RecomputeAll(ctx context.Context) (RecomputeResult, error) {
	comps, err := s.competences.FindAll(ctx)
	if err != nil {
		return RecomputeResult{}, ErrInternal
	}
	return s.recomputeBatch(ctx, comps), nil
}

func (s *Scoring) RecomputeCollaborator(ctx context.Context, collaboratorID uuid.UUID) (RecomputeResult, error) {
	if collaboratorID == uuid.Nil {
		return RecomputeResult{}, ErrInvalidInput
	}
	comps, err := s.competences.FindByCollaborator(ctx, collaboratorID)
	if err != nil {
		return RecomputeResult{}, ErrInternal
	}
	if len(comps) == 0 {
		return RecomputeResult{}, ErrNoCompetences
	}
	return s.recomputeBatch(ctx, comps), nil
}

func (s *Scoring) RecomputeCompetence(ctx context.Context, competenceID uuid.UUID) (repository.Competence, error) {
	if competenceID == uuid.Nil {
		return repository.Competence{}, ErrInvalidInput
	}
	comp, err := s.competences.FindByID(ctx, competenceID)
	if err != nil {
		if errors.Is(err, repository.ErrCompetenceNotFound) {
			return repository.Competence{}, ErrCompetenceNotFound
		}
		return repository.Competence{}, ErrInternal
	}

	if err := s.recomputeOne(ctx, comp); err != nil {
		return repository.Competence{}, ErrInternal
	}
	s.invalidate(ctx)

	updated, err := s.competences.FindByID(ctx, competenceID)
	if err != nil {
		return repository.Competence{}, ErrInternal
	}
	return updated, nil
}

// recomputeBatch applies the scoring formula to each record, isolating
// per-item failures so one bad row never stops the rest.
func (s *Scoring) recomputeBatch(ctx context.Context, comps []repository.Competence) RecomputeResult {
	res := RecomputeResult{Errors: make([]string, 0)}
	for _, comp := range comps {
		if err := s.recomputeOne(ctx, comp); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("competence %s: %v", comp.ID, err))
			metrics.RescoreFailures.Inc()
			s.logger.Warn("rescore item failed",
				zap.String("competence_id", comp.ID.String()),
				zap.Error(err),
			)
			continue
		}
		res.Updated++
	}
	s.invalidate(ctx)
	s.logger.Info("rescore batch finished",
		zap.Int("updated", res.Updated),
		zap.Int("failed", len(res.Errors)),
	)
	return res
}

func (s *Scoring) recomputeOne(ctx context.Context, comp repository.Competence) error {
	entries, err := s.history.FindByPair(ctx, comp.CollaboratorID, comp.TechnologyID)
	if err != nil {
		return err
	}

	history := make([]scoring.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, scoring.HistoryEntry{
			EndPeriod:      e.EndPeriod,
			DurationMonths: e.DurationMonths,
		})
	}

	level := scoring.Compute(s.params, comp.DeclaredLevel, history, s.now())
	if err := s.competences.UpdateComputedLevel(ctx, comp.ID, level); err != nil {
		return err
	}
	metrics.CompetencesRescored.Inc()
	return nil
}

func (s *Scoring) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, aggCacheKeyPrefix+"*"); err != nil {
		s.logger.Warn("aggregation cache invalidation failed", zap.Error(err))
	}
}
