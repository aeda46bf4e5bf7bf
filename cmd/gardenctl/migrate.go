package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/GardenKeeper_Go/internal/config"
	"github.com/osse101/GardenKeeper_Go/internal/database"
)

type migrateOptions struct {
	driver        string
	sqlitePath    string
	maxRetries    int
	retryInterval time.Duration
}

func newMigrateCmd() *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded snapshot-store migrations",
		Long: "Waits for the database to accept connections, then applies every pending migration.\n" +
			"Postgres settings come from DB_USER, DB_PASSWORD, DB_HOST, DB_PORT and DB_NAME.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.driver, "driver", envOr("STORE_DRIVER", config.StoreDriverPostgres), "postgres or sqlite")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", envOr("SQLITE_PATH", config.DefaultSQLitePath), "SQLite database file")
	flags.IntVar(&opts.maxRetries, "retries", 30, "connection attempts before giving up")
	flags.DurationVar(&opts.retryInterval, "retry-interval", 2*time.Second, "delay between connection attempts")
	return cmd
}

func runMigrate(cmd *cobra.Command, opts *migrateOptions) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch opts.driver {
	case config.StoreDriverSQLite:
		printHeader(out, "Migrating "+opts.sqlitePath)
		db, err := database.OpenSQLite(opts.sqlitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.MigrateSQLite(ctx, db); err != nil {
			return err
		}

	case config.StoreDriverPostgres:
		cfg := &config.Config{
			DBUser:     envOr("DB_USER", "postgres"),
			DBPassword: envOr("DB_PASSWORD", "postgres"),
			DBHost:     envOr("DB_HOST", "localhost"),
			DBPort:     envOr("DB_PORT", "5432"),
			DBName:     envOr("DB_NAME", "gardenkeeper"),
		}
		printHeader(out, "Waiting for database...")

		var lastErr error
		for i := 0; i < opts.maxRetries; i++ {
			pool, err := database.NewPool(cfg.GetDBConnString(), 2, time.Minute, time.Hour)
			if err == nil {
				printSuccess(out, "Database is ready")
				err = database.MigratePool(ctx, pool)
				pool.Close()
				if err != nil {
					return err
				}
				lastErr = nil
				break
			}
			lastErr = err
			fmt.Fprintf(out, "Database not ready (%d/%d): %v\n", i+1, opts.maxRetries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.retryInterval):
			}
		}
		if lastErr != nil {
			return fmt.Errorf("database failed to become ready after %d attempts: %w", opts.maxRetries, lastErr)
		}

	default:
		return fmt.Errorf("unsupported driver %q", opts.driver)
	}

	printSuccess(out, "Migrations applied")
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
