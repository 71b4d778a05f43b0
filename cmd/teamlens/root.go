package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hacknox/teamlens/internal/config"
	"github.com/hacknox/teamlens/internal/database"
	"github.com/hacknox/teamlens/internal/monitoring"
	"github.com/hacknox/teamlens/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "teamlens",
	Short: "Team contribution intelligence pipeline",
	Long: `teamlens fuses meeting-transcript analysis and git activity into one
behavioral classification per person, versioned across runs.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads configuration and wires the shared collaborators.
// Precedence for settings: real env vars > .env file > config file >
// defaults.
func bootstrap() (*config.Config, *monitoring.Logger, *monitoring.Metrics, *database.Repository, *pipeline.Runner, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}

	logger := monitoring.NewLogger(monitoring.ParseLevel(cfg.LogLevel))
	metrics := monitoring.NewMetrics()

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	repo := database.NewRepository(db)
	runner := pipeline.NewRunner(cfg, repo, logger, metrics, nil)

	cleanup := func() { _ = db.Close() }
	return cfg, logger, metrics, repo, runner, cleanup, nil
}
