package v1

import (
	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// Register wires the full v1 surface: repositories, usecases, handlers and
// the auth guard on mutating routes.
func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.Cache, logger *zap.Logger) {
	if r == nil {
		return
	}

	var jwtSvc jwt.Service
	if cfg.Auth.Enabled() {
		jwtSvc = jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiresIn)
	}
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	collaboratorRepo := repository.NewPostgresCollaboratorRepository(db)
	technologyRepo := repository.NewPostgresTechnologyRepository(db)
	typeRepo := repository.NewPostgresTypeRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	competenceRepo := repository.NewPostgresCompetenceRepository(db)
	historyRepo := repository.NewPostgresHistoryRepository(db)
	relationRepo := repository.NewPostgresRelationRepository(db)
	analyticsRepo := repository.NewPostgresAnalyticsRepository(db)

	scoringUC := usecase.NewScoringUsecase(competenceRepo, historyRepo, cache, logger)
	collaboratorUC := usecase.NewCollaboratorUsecase(collaboratorRepo, cache, logger)
	technologyUC := usecase.NewTechnologyUsecase(technologyRepo, cache, logger)
	typeUC := usecase.NewTypeUsecase(typeRepo, logger)
	projectUC := usecase.NewProjectUsecase(projectRepo, cache, logger)
	competenceUC := usecase.NewCompetenceUsecase(competenceRepo, collaboratorRepo, technologyRepo, scoringUC, cache, logger)
	historyUC := usecase.NewHistoryUsecase(historyRepo, projectRepo, technologyRepo, collaboratorRepo, competenceRepo, scoringUC, cache, logger)
	relationUC := usecase.NewRelationUsecase(relationRepo, cache, logger)
	allocationUC := usecase.NewAllocationUsecase(analyticsRepo, cache, logger)
	matrixUC := usecase.NewMatrixUsecase(analyticsRepo, cache, cfg.Matrix.CaseInsensitiveFilters, logger)
	dashboardUC := usecase.NewDashboardUsecase(analyticsRepo, collaboratorRepo, cache, logger)
	importUC := usecase.NewImportUsecase(collaboratorRepo, technologyRepo, projectRepo, competenceRepo, historyRepo, relationRepo, scoringUC, cache, logger)

	handler.NewAuthHandler(jwtSvc, cfg.Auth.OperatorKeyHash).RegisterRoutes(r.Group("/auth"))

	guarded := authMw.WritesOnly()
	handler.NewCollaboratorHandler(collaboratorUC).RegisterRoutes(r.Group("/collaborators", guarded))
	handler.NewTechnologyHandler(technologyUC).RegisterRoutes(r.Group("/technologies", guarded))
	handler.NewTypeHandler(typeUC).RegisterRoutes(r.Group("/types", guarded))
	handler.NewProjectHandler(projectUC).RegisterRoutes(r.Group("/projects", guarded))
	handler.NewCompetenceHandler(competenceUC).RegisterRoutes(r.Group("/competences", guarded))
	handler.NewHistoryHandler(historyUC).RegisterRoutes(r.Group("/history", guarded))
	handler.NewRelationHandler(relationUC).RegisterRoutes(r.Group("/relations", guarded))
	handler.NewScoringHandler(scoringUC).RegisterRoutes(r.Group("/scoring", guarded))
	handler.NewImportHandler(importUC).RegisterRoutes(r.Group("/import", guarded))

	handler.NewAllocationHandler(allocationUC).RegisterRoutes(r.Group("/allocation"))
	handler.NewMatrixHandler(matrixUC).RegisterRoutes(r.Group("/matrix"))
	handler.NewDashboardHandler(dashboardUC, matrixUC).RegisterRoutes(r.Group("/dashboard"))
}
