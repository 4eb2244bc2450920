package main

import (
	"github.com/spf13/cobra"

	"pantry/internal/database"
)

func newMigrateCmd() *cobra.Command {
	var createDB bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			ctx := cmd.Context()

			if createDB || cfg.Database.AdminUser != "" {
				if err := database.EnsureDatabaseExists(ctx, cfg.Database, log); err != nil {
					return err
				}
			}

			pool, err := database.Connect(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			return database.RunMigrations(ctx, pool, log)
		},
	}
	cmd.Flags().BoolVar(&createDB, "create-db", false, "create the database first (needs DB_ADMIN_USER and DB_ADMIN_PASSWORD)")
	return cmd
}
