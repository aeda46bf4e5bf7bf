package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/GardenKeeper_Go/internal/config"
	"github.com/osse101/GardenKeeper_Go/internal/database"
	"github.com/osse101/GardenKeeper_Go/internal/database/memory"
	"github.com/osse101/GardenKeeper_Go/internal/database/postgres"
	"github.com/osse101/GardenKeeper_Go/internal/database/sqlite"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

// OpenStore opens the snapshot repository named by cfg.StoreDriver and
// applies migrations when cfg.MigrateOnRun is set
func OpenStore(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		if cfg.MigrateOnRun {
			if err := database.MigratePool(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStore, err)
			}
		} else {
			slog.Info(LogMsgMigrationsSkipped, "driver", cfg.StoreDriver)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return postgres.NewSnapshotRepository(pool), nil

	case config.StoreDriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		if cfg.MigrateOnRun {
			if err := database.MigrateSQLite(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStore, err)
			}
		} else {
			slog.Info(LogMsgMigrationsSkipped, "driver", cfg.StoreDriver)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "path", cfg.SQLitePath)
		return sqlite.NewSnapshotRepository(db), nil

	case config.StoreDriverMemory:
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
		return memory.NewSnapshotRepository(), nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, cfg.StoreDriver)
}
