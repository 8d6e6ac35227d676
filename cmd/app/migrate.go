package main

import (
	"FinanceTracker/database/postgres"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDatabase(postgres.MigrateUp)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDatabase(postgres.MigrateDown)
		},
	})

	return cmd
}

func withDatabase(run func(db *sqlx.DB) error) error {
	db, err := postgres.New(cfg.DBDSN, 1)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := run(db); err != nil {
		return err
	}
	logger.Info("Migration finished")
	return nil
}
