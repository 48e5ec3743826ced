package cli

import (
	"context"
	"fmt"

	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/spf13/cobra"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute every competence level from declared levels and usage history",
	Run: func(cmd *cobra.Command, args []string) {
		container, err := newContainer()
		if err != nil {
			exitErr("bootstrap container", err)
		}
		defer func() { _ = container.Close() }()

		competenceRepo := repository.NewPostgresCompetenceRepository(container.DB)
		historyRepo := repository.NewPostgresHistoryRepository(container.DB)
		scoringUC := usecase.NewScoringUsecase(competenceRepo, historyRepo, container.Cache, container.Logger)

		result, err := scoringUC.RecomputeAll(context.Background())
		if err != nil {
			exitErr("recompute", err)
		}

		fmt.Printf("recomputed %d competences\n", result.Updated)
		for _, msg := range result.Errors {
			fmt.Printf("  skipped: %s\n", msg)
		}
	},
}

func init() {
	RootCmd.AddCommand(rescoreCmd)
}
