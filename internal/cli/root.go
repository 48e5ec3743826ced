// Package cli implements the skill-matrix CLI commands.
package cli

import (
	"fmt"
	"os"

	"skill-matrix/internal/app"
	"skill-matrix/internal/config"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "skill-matrix",
	Short: "Skills-matrix API server and tooling",
	Long:  "Tracks collaborator competences across technologies, scores them from project history and serves the aggregated views over HTTP.",
}

func newContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.NewContainer(cfg)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
