package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tradeerp/backend/internal/infrastructure/config"
	"github.com/tradeerp/backend/internal/infrastructure/migration"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error { return m.Up() })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error { return m.Down() })
	},
}

var stepsCmd = &cobra.Command{
	Use:     "steps N",
	Short:   "Apply N migrations, or roll back when N is negative",
	Example: "  migrate steps 2\n  migrate steps -- -1",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto VERSION",
	Short: "Migrate up or down to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(v)) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			status, err := m.Status()
			if err != nil {
				return err
			}
			if !status.Applied {
				cmd.Println("No migrations applied")
				return nil
			}
			cmd.Printf("Version: %d (dirty: %t)\n", status.Version, status.Dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Set the schema version without running migrations, clearing the dirty flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Force(v) })
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME [DESCRIPTION]",
	Short: "Create an empty up/down migration pair",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := ""
		if len(args) == 2 {
			description = args[1]
		}
		mf, err := migration.CreateMigration(localPath(), args[0], description)
		if err != nil {
			return err
		}
		cmd.Printf("Created %s\nCreated %s\n", mf.UpPath, mf.DownPath)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List migration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := migration.ListMigrations(localPath())
		if err != nil {
			return err
		}
		for _, name := range names {
			cmd.Println(name)
		}
		return nil
	},
}

// localPath resolves the migrations directory for commands that never touch the database
func localPath() string {
	if migrationsPath != "" {
		return migrationsPath
	}
	cfg, err := config.Load()
	if err != nil {
		return "migrations"
	}
	return cfg.Database.MigrationsPath
}
