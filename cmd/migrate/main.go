package main

import (
	"fmt"
	"os"

	"github.com/dom/daily-diet-api/internal/config"
	"github.com/dom/daily-diet-api/internal/logger"
	"github.com/dom/daily-diet-api/internal/repository/postgres"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const databaseURLFlag = "database-url"

var migrateFlags = map[string]cobraflags.Flag{
	databaseURLFlag: &cobraflags.StringFlag{
		Name:  databaseURLFlag,
		Value: "",
		Usage: "Postgres DSN. Overrides DATABASE_URL when set",
	},
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the daily diet database schema",
		Long: `Create or drop the users and meals tables.

Examples:
  migrate up                                   # Apply schema using DATABASE_URL
  migrate down --database-url postgres://...   # Drop meals, then users`,
		SilenceUsage: true,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Create or alter tables, indexes and constraints",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDatabase(func(db *gorm.DB) error {
				if err := postgres.Migrate(db); err != nil {
					return err
				}
				logger.L().Info("schema migrated")
				return nil
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Drop the meals and users tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDatabase(func(db *gorm.DB) error {
				if err := postgres.Rollback(db); err != nil {
					return err
				}
				logger.L().Info("schema dropped")
				return nil
			})
		},
	}

	// Flags live on each subcommand so they parse after it
	cobraflags.RegisterMap(upCmd, migrateFlags)
	cobraflags.RegisterMap(downCmd, migrateFlags)

	rootCmd.AddCommand(upCmd, downCmd)
	return rootCmd
}

func withDatabase(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	dsn := cfg.DatabaseURL
	if override := migrateFlags[databaseURLFlag].GetString(); override != "" {
		dsn = override
	}

	db, err := postgres.NewConnection(postgres.Options{
		DatabaseURL: dsn,
		LogLevel:    postgres.LogLevelFor(cfg.Environment),
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := fn(db); err != nil {
		logger.L().Error("migration failed", zap.Error(err))
		return err
	}
	return nil
}
