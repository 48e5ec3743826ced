package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"skill-matrix/internal/importer"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CSVImportReport struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

type ProjectImportReport struct {
	ProjectsCreated  int      `json:"projects_created"`
	ProjectsExisting int      `json:"projects_existing"`
	HistoryRows      int      `json:"history_rows"`
	Errors           []string `json:"errors"`
}

type CVScanReport struct {
	Detected           []string `json:"detected"`
	CompetencesCreated int      `json:"competences_created"`
}

type ImportUsecase interface {
	ImportCompetencesCSV(ctx context.Context, r io.Reader) (CSVImportReport, error)
	ImportProjects(ctx context.Context, r io.Reader) (ProjectImportReport, error)
	ScanCV(ctx context.Context, text string, collaboratorID *uuid.UUID) (CVScanReport, error)
}

// Imports feeds the store from bulk sources. All loaders share the same
// posture: collect per-item errors, keep going, rescore what was touched.
type Imports struct {
	collaborators repository.CollaboratorRepository
	technologies  repository.TechnologyRepository
	projects      repository.ProjectRepository
	competences   repository.CompetenceRepository
	history       repository.HistoryRepository
	relations     repository.RelationRepository
	scoring       ScoringUsecase
	cache         Cache
	logger        *zap.Logger
}

func NewImportUsecase(
	collaborators repository.CollaboratorRepository,
	technologies repository.TechnologyRepository,
	projects repository.ProjectRepository,
	competences repository.CompetenceRepository,
	history repository.HistoryRepository,
	relations repository.RelationRepository,
	scoring ScoringUsecase,
	cache Cache,
	logger *zap.Logger,
) *Imports {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Imports{
		collaborators: collaborators,
		technologies:  technologies,
		projects:      projects,
		competences:   competences,
		history:       history,
		relations:     relations,
		scoring:       scoring,
		cache:         cache,
		logger:        logger,
	}
}

func (u *Imports) ImportCompetencesCSV(ctx context.Context, r io.Reader) (CSVImportReport, error) {
	records, parseErrs := importer.ParseCompetenceCSV(r)

	report := CSVImportReport{Errors: parseErrs}
	for _, rec := range records {
		created, err := u.importCompetence(ctx, rec)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", rec.Line, err))
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	invalidateAggregates(ctx, u.cache, u.logger)
	u.logger.Info("competence csv import finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("failed", len(report.Errors)),
	)
	return report, nil
}

func (u *Imports) importCompetence(ctx context.Context, rec importer.CompetenceRecord) (bool, error) {
	col, err := u.getOrCreateCollaborator(ctx, rec.FirstName, rec.LastName)
	if err != nil {
		return false, err
	}
	tech, err := u.getOrCreateTechnology(ctx, rec.Technology)
	if err != nil {
		return false, err
	}

	existing, err := u.competences.FindByPair(ctx, col.ID, tech.ID)
	switch {
	case err == nil:
		if _, err := u.competences.UpdateLevels(ctx, existing.ID, rec.DeclaredLevel, float64(rec.DeclaredLevel)); err != nil {
			return false, err
		}
		u.rescorePair(ctx, col.ID, tech.ID)
		return false, nil
	case errors.Is(err, repository.ErrCompetenceNotFound):
		if _, err := u.competences.Create(ctx, repository.Competence{
			CollaboratorID: col.ID,
			TechnologyID:   tech.ID,
			DeclaredLevel:  rec.DeclaredLevel,
			ComputedLevel:  float64(rec.DeclaredLevel),
		}); err != nil {
			return false, err
		}
		u.rescorePair(ctx, col.ID, tech.ID)
		return true, nil
	default:
		return false, err
	}
}

func (u *Imports) ImportProjects(ctx context.Context, r io.Reader) (ProjectImportReport, error) {
	payload, parseErrs, err := importer.ParseProjectsJSON(r)
	if err != nil {
		return ProjectImportReport{}, ErrInvalidInput
	}

	report := ProjectImportReport{Errors: parseErrs}
	for _, rec := range payload.Projects {
		if err := u.importProject(ctx, rec, &report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("project %q: %v", rec.Name, err))
		}
	}

	invalidateAggregates(ctx, u.cache, u.logger)
	u.logger.Info("project import finished",
		zap.Int("created", report.ProjectsCreated),
		zap.Int("existing", report.ProjectsExisting),
		zap.Int("history_rows", report.HistoryRows),
		zap.Int("failed", len(report.Errors)),
	)
	return report, nil
}

func (u *Imports) importProject(ctx context.Context, rec importer.ProjectRecord, report *ProjectImportReport) error {
	proj, err := u.projects.FindByName(ctx, rec.Name)
	switch {
	case err == nil:
		report.ProjectsExisting++
	case errors.Is(err, repository.ErrProjectNotFound):
		proj, err = u.projects.Create(ctx, rec.Name, rec.EndPeriod, rec.DurationMonths)
		if err != nil {
			return err
		}
		report.ProjectsCreated++
	default:
		return err
	}

	techs := make([]repository.Technology, 0, len(rec.Technologies))
	for _, name := range rec.Technologies {
		tech, err := u.getOrCreateTechnology(ctx, name)
		if err != nil {
			return err
		}
		if err := u.relations.LinkProjectTechnology(ctx, proj.ID, tech.ID); err != nil {
			return err
		}
		techs = append(techs, tech)
	}

	for _, member := range rec.Team {
		col, err := u.getOrCreateCollaborator(ctx, member.FirstName, member.LastName)
		if err != nil {
			return err
		}
		if err := u.relations.LinkProjectCollaborator(ctx, proj.ID, col.ID); err != nil {
			return err
		}

		for _, tech := range techs {
			if _, err := u.history.Create(ctx, repository.HistoryEntry{
				ProjectID:      proj.ID,
				TechnologyID:   tech.ID,
				CollaboratorID: col.ID,
				EndPeriod:      rec.EndPeriod,
				DurationMonths: rec.DurationMonths,
			}); err != nil {
				return err
			}
			report.HistoryRows++
			u.rescorePair(ctx, col.ID, tech.ID)
		}
	}
	return nil
}

// ScanCV matches the technology catalog against a plain-text CV. With a
// collaborator id the detected technologies are also turned into level-1
// declared competences, skipping pairs that already exist.
func (u *Imports) ScanCV(ctx context.Context, text string, collaboratorID *uuid.UUID) (CVScanReport, error) {
	if strings.TrimSpace(text) == "" {
		return CVScanReport{}, ErrInvalidInput
	}

	catalog, err := u.technologies.FindAll(ctx)
	if err != nil {
		return CVScanReport{}, ErrInternal
	}
	names := make([]string, 0, len(catalog))
	byName := make(map[string]repository.Technology, len(catalog))
	for _, t := range catalog {
		names = append(names, t.Name)
		byName[t.Name] = t
	}

	report := CVScanReport{Detected: importer.ScanText(text, names)}
	if collaboratorID == nil {
		return report, nil
	}

	col, err := u.collaborators.FindByID(ctx, *collaboratorID)
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			return CVScanReport{}, ErrCollaboratorNotFound
		}
		return CVScanReport{}, ErrInternal
	}

	for _, name := range report.Detected {
		tech := byName[name]
		_, err := u.competences.Create(ctx, repository.Competence{
			CollaboratorID: col.ID,
			TechnologyID:   tech.ID,
			DeclaredLevel:  1,
			ComputedLevel:  1,
		})
		if err != nil {
			if errors.Is(err, repository.ErrCompetenceExists) {
				continue
			}
			return CVScanReport{}, ErrInternal
		}
		report.CompetencesCreated++
		u.rescorePair(ctx, col.ID, tech.ID)
	}

	if report.CompetencesCreated > 0 {
		invalidateAggregates(ctx, u.cache, u.logger)
	}
	return report, nil
}

func (u *Imports) getOrCreateCollaborator(ctx context.Context, firstName, lastName string) (repository.Collaborator, error) {
	col, err := u.collaborators.FindByName(ctx, firstName, lastName)
	if err == nil {
		return col, nil
	}
	if !errors.Is(err, repository.ErrCollaboratorNotFound) {
		return repository.Collaborator{}, err
	}
	return u.collaborators.Create(ctx, firstName, lastName)
}

func (u *Imports) getOrCreateTechnology(ctx context.Context, name string) (repository.Technology, error) {
	tech, err := u.technologies.FindByName(ctx, name)
	if err == nil {
		return tech, nil
	}
	if !errors.Is(err, repository.ErrTechnologyNotFound) {
		return repository.Technology{}, err
	}
	return u.technologies.Create(ctx, name)
}

func (u *Imports) rescorePair(ctx context.Context, collaboratorID, technologyID uuid.UUID) {
	if u.scoring == nil {
		return
	}
	comp, err := u.competences.FindByPair(ctx, collaboratorID, technologyID)
	if err != nil {
		if !errors.Is(err, repository.ErrCompetenceNotFound) {
			u.logger.Warn("competence lookup during import failed", zap.Error(err))
		}
		return
	}
	if _, err := u.scoring.RecomputeCompetence(ctx, comp.ID); err != nil {
		u.logger.Warn("rescore during import failed",
			zap.String("competence_id", comp.ID.String()),
			zap.Error(err),
		)
	}
}
