package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

const (
	testGardenCore = "0x1111111111111111111111111111111111111111"
	testItems      = "0x2222222222222222222222222222222222222222"
	testToken      = "0x4444444444444444444444444444444444444444"
	testPlayer     = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
)

// setRequired sets the minimum environment Load accepts
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("API_KEY", "test-key")
	t.Setenv("RPC_URL", "http://localhost:8545")
	t.Setenv("GARDENCORE_ADDRESS", testGardenCore)
	t.Setenv("ITEMS1155_ADDRESS", testItems)
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when only required vars set", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "logs", cfg.LogDir)
		assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
		assert.Equal(t, ClockSourceWall, cfg.ClockSource)
		assert.Equal(t, 4*time.Second, cfg.PollInterval)
		assert.Equal(t, int64(DefaultChainID), cfg.ChainID)
		assert.Empty(t, cfg.WatchTargets)
		assert.Equal(t, DefaultEventDeadLetterPath, cfg.EventDeadLetterPath)
		assert.Empty(t, cfg.AllowedOrigins)
		assert.Equal(t, ConfigPathSeedCatalog, cfg.SeedCatalogPath)
		assert.Equal(t, DefaultMaxWatchedPlots, cfg.MaxWatched)
		assert.Empty(t, cfg.GardenTokenAddress)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("STORE_DRIVER", "SQLite")
		t.Setenv("SQLITE_PATH", "/tmp/garden.db")
		t.Setenv("CLOCK_SOURCE", "chain")
		t.Setenv("CHAIN_ID", "8453")
		t.Setenv("POLL_INTERVAL", "3s")
		t.Setenv("POLL_WORKERS", "8")
		t.Setenv("WATCH_PLOTS", testPlayer+":0, "+testPlayer+":1")
		t.Setenv("GARDEN_TOKEN_ADDRESS", testToken)
		t.Setenv("MAX_WATCHED_PLOTS", "16")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
		assert.Equal(t, "/tmp/garden.db", cfg.SQLitePath)
		assert.Equal(t, ClockSourceChain, cfg.ClockSource)
		assert.Equal(t, int64(8453), cfg.ChainID)
		assert.Equal(t, 3*time.Second, cfg.PollInterval)
		assert.Equal(t, 8, cfg.PollWorkers)
		require.Len(t, cfg.WatchTargets, 2)
		assert.Equal(t, uint16(1), cfg.WatchTargets[1].PlotID)
		assert.Equal(t, testToken, cfg.GardenTokenAddress)
		assert.Equal(t, 16, cfg.MaxWatched)
	})

	t.Run("returns error when API_KEY is missing", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		os.Unsetenv("API_KEY")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "API_KEY")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("returns error for invalid contract address", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("GARDENCORE_ADDRESS", "not-an-address")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "GARDENCORE_ADDRESS")

		t.Setenv("GARDENCORE_ADDRESS", testGardenCore)
		t.Setenv("GARDEN_TOKEN_ADDRESS", "0x12")
		_, err = Load()
		assert.ErrorContains(t, err, "GARDEN_TOKEN_ADDRESS")
	})

	t.Run("watch cap must cover configured plots", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("WATCH_PLOTS", testPlayer+":0,"+testPlayer+":1")
		t.Setenv("MAX_WATCHED_PLOTS", "1")

		_, err := Load()
		assert.ErrorContains(t, err, "MAX_WATCHED_PLOTS")

		t.Setenv("MAX_WATCHED_PLOTS", "0")
		t.Setenv("WATCH_PLOTS", "")
		_, err = Load()
		assert.ErrorContains(t, err, "MAX_WATCHED_PLOTS")
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("rejects unknown drivers and clocks", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("STORE_DRIVER", "mongo")
		_, err := Load()
		assert.ErrorContains(t, err, "STORE_DRIVER")

		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("CLOCK_SOURCE", "sundial")
		_, err = Load()
		assert.ErrorContains(t, err, "CLOCK_SOURCE")
	})

	t.Run("rejects malformed watch list", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("WATCH_PLOTS", testPlayer)

		_, err := Load()
		assert.ErrorContains(t, err, "WATCH_PLOTS")
	})

	t.Run("docker compose connection string", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("DB_HOST", "db")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Contains(t, cfg.GetDBConnString(), "postgres://postgres:postgres@db:5432/gardenkeeper")
	})
}

func TestParseWatchTargets(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.WatchTarget
		wantErr error
	}{
		{"empty", "", nil, nil},
		{"single", testPlayer + ":2", []domain.WatchTarget{{Player: testPlayer, PlotID: 2}}, nil},
		{"lowercase address is checksummed", "0xabcdef0123456789abcdef0123456789abcdef01:0", []domain.WatchTarget{{Player: testPlayer, PlotID: 0}}, nil},
		{"missing plot", testPlayer, nil, domain.ErrInvalidInput},
		{"bad address", "0x12:0", nil, domain.ErrInvalidPlayer},
		{"plot too large", testPlayer + ":70000", nil, domain.ErrInvalidPlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWatchTargets(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT",
		"SERVICE_NAME", "VERSION", "ENVIRONMENT", "LOG_DIR",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"STORE_DRIVER", "SQLITE_PATH", "RPC_URL", "CHAIN_ID",
		"GARDENCORE_ADDRESS", "ITEMS1155_ADDRESS", "GARDEN_TOKEN_ADDRESS",
		"CLOCK_SOURCE", "POLL_INTERVAL", "POLL_WORKERS", "WATCH_PLOTS",
		"ENV_SCHEMA_VERSION", "EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY",
		"EVENT_DEADLETTER_PATH", "TRUSTED_PROXIES", "ALLOWED_ORIGINS",
		"SEED_CATALOG_PATH", "MAX_WATCHED_PLOTS",
	}

	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
