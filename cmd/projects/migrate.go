package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-console/config"
	"github.com/GoSim-25-26J-441/projects-console/internal/bootstrap"
	"github.com/GoSim-25-26J-441/projects-console/internal/logging"
	"github.com/GoSim-25-26J-441/projects-console/internal/projects/repository"
)

// migrateCmd creates the project table
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the project table in the configured database",
	Long: `Create the project table if it does not exist yet. Safe to run repeatedly.
Only the postgres backend has a schema.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Store.Backend != config.BackendPostgres {
		return fmt.Errorf("migrate only applies to the %s backend, got %s", config.BackendPostgres, cfg.Store.Backend)
	}

	log, closeLog, err := logging.New(cfg.App)
	if err != nil {
		return err
	}
	defer closeLog()
	defer log.Sync()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	db, err := bootstrap.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}

	log.Info("schema applied", zap.String("driver", cfg.Database.Driver))
	fmt.Fprintln(cmd.OutOrStdout(), "Project table is ready.")
	return nil
}
