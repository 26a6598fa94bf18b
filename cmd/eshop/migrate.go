package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/neon-eshop/internal/config"
	"github.com/nikolayk812/neon-eshop/internal/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Storage.Driver != config.DriverPostgres {
			logger.Info("local storage creates its schema on open, nothing to migrate")
			return nil
		}

		pool, err := pgxpool.New(cmd.Context(), cfg.Storage.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()

		applied, err := migrations.Apply(cmd.Context(), pool)
		if err != nil {
			return fmt.Errorf("migrations.Apply: %w", err)
		}

		logger.Info("migrations applied", zap.Strings("files", applied))
		return nil
	},
}
