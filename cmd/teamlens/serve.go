package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hacknox/teamlens/internal/pipeline"
	"github.com/hacknox/teamlens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the API and run the pipeline on its daily schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, metrics, repo, runner, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler := pipeline.NewScheduler(runner, cfg.ScheduleHour, cfg.ScheduleMinute)
		go scheduler.Start(ctx)

		logger.Info("Server starting", "addr", cfg.Addr)
		srv := server.New(cfg, repo, runner, logger, metrics)
		if err := srv.Serve(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
