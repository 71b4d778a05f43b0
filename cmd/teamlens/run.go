package main

import (
	"context"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one full pipeline pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, _, _, runner, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := runner.Run(context.Background())
		if err != nil {
			return err
		}

		logger.Info("Run finished",
			"version", result.Version,
			"events", result.Events,
			"actors", result.Actors,
			"members", len(result.Members),
		)
		return nil
	},
}
