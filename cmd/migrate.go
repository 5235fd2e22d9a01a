package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/leave-management/db/migrations"
	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory on disk; embedded migrations are used when empty")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	switch cfg.Database.Driver {
	case internal.DriverMemory:
		log.Info("memory driver keeps no schema; nothing to migrate")
		return nil
	case internal.DriverSQLite:
		// openStorage auto-migrates sqlite
		storage, err := openStorage(cfg.Database, log)
		if err != nil {
			return err
		}
		log.Info("sqlite schema is up to date")
		return storage.Close()
	}

	return migratePostgres(cmd.Context(), cfg.Database)
}

func migratePostgres(ctx context.Context, cfg internal.DatabaseConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dir := migrateDir
	if dir == "" {
		goose.SetBaseFS(migrations.FS)
		dir = "."
	} else if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("goose: migrations directory: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetTableName("schema_migrations")

	db, err := goose.OpenDBWithDriver("pgx", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	command := "up"
	if migrateRollback {
		command = "down"
	}
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
