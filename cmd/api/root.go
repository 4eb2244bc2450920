package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pantry/internal/config"
	"pantry/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pantry",
		Short:        "Household pantry, recipe and shopping list API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// bootstrap loads configuration and builds the logger shared by every
// subcommand.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
