// Package main implements the projects console: an interactive menu for
// creating, listing, selecting, updating and deleting project records.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-console/config"
	"github.com/GoSim-25-26J-441/projects-console/internal/bootstrap"
	"github.com/GoSim-25-26J-441/projects-console/internal/logging"
	"github.com/GoSim-25-26J-441/projects-console/internal/projects/service"
	"github.com/GoSim-25-26J-441/projects-console/internal/session"
)

var (
	// envFile is an optional dotenv file loaded before reading the environment
	envFile string
	// backend overrides STORE_BACKEND when set
	backend string
	// version information
	version = "dev"
)

// exitInterrupted is the conventional status for a SIGINT exit.
const exitInterrupted = 130

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "projects",
	Short: "Interactive console for managing projects",
	Long: `projects opens a menu-driven session for adding, listing, selecting,
updating and deleting projects. Press Enter on an empty menu prompt to quit.

Examples:
  # Run against the configured Postgres database
  projects

  # Try it out without a database
  projects --backend memory`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runSession,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "store backend: postgres, redis or memory (overrides STORE_BACKEND)")
	rootCmd.AddCommand(migrateCmd)
}

// loadConfig applies the flag overrides on top of the environment.
func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if backend != "" {
		if err := os.Setenv("STORE_BACKEND", backend); err != nil {
			return nil, err
		}
	}
	return config.Load(files...)
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// exitOnInterrupt ends the process when ctx is cancelled by a signal. A
// console read blocked on stdin never observes ctx, so the loop alone would
// keep waiting for the next line. The returned stop disarms the watcher.
func exitOnInterrupt(ctx context.Context, log *zap.Logger, cleanup func()) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.Info("interrupted", zap.Error(ctx.Err()))
			cleanup()
			_ = log.Sync()
			os.Exit(exitInterrupted)
		case <-done:
		}
	}()
	return func() { close(done) }
}

// runSession handles the default command
func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg.App)
	if err != nil {
		return err
	}
	defer closeLog()
	defer log.Sync()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	repo, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", zap.Error(err))
		return err
	}
	defer closeStore()

	sessionLog := logging.ForSession(log)
	svc := service.NewProjectService(repo, sessionLog)
	ctrl := session.NewController(svc, cmd.InOrStdin(), cmd.OutOrStdout(), sessionLog)

	stop := exitOnInterrupt(ctx, sessionLog, closeStore)
	defer stop()

	sessionLog.Info("session started", zap.String("backend", cfg.Store.Backend))
	return ctrl.Run(ctx)
}
