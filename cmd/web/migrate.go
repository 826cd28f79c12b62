package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"office-asset-web/internal/config"
	"office-asset-web/internal/database"
	"office-asset-web/internal/logging"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the session tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.envFiles...)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)
			if !cfg.UsesDatabase() {
				logger.Info("sessions are kept in memory; nothing to migrate")
				return nil
			}

			db, err := database.InitDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			logger.Info("session schema is up to date")
			return nil
		},
	}
}
