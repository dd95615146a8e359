package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tradeerp/backend/internal/infrastructure/config"
	"github.com/tradeerp/backend/internal/infrastructure/logger"
	"github.com/tradeerp/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

var (
	migrationsPath string
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the trade pricing database schema",
	Long: `migrate applies, rolls back and inspects the SQL migrations under
the migrations directory. Database settings come from config.toml and
TRADE_DATABASE_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: database.migrations_path)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, gotoCmd, versionCmd, forceCmd, createCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
}

func resolvePath(cfg *config.DatabaseConfig) string {
	if migrationsPath != "" {
		return migrationsPath
	}
	return cfg.MigrationsPath
}

// withMigrator loads the configuration, connects and runs fn
func withMigrator(fn func(m *migration.Migrator) error) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbCfg := cfg.Database
	dbCfg.MigrationsPath = resolvePath(&dbCfg)

	m, err := migration.NewFromConfig(&dbCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}
