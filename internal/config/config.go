package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	LogDir      string
	APIKey      string // API key for authentication

	// Storage
	StoreDriver  string // postgres, sqlite or memory
	SQLitePath   string
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string
	DBMaxConns   int
	DBMaxIdle    time.Duration
	DBMaxLife    time.Duration
	MigrateOnRun bool

	// Chain
	RPCURL             string
	ChainID            int64
	GardenCoreAddress  string
	Items1155Address   string
	GardenTokenAddress string
	ClockSource        string // wall or chain
	RPCTimeout         time.Duration

	// Seeds
	SeedCatalogPath string
	SeedCacheTTL    time.Duration

	// Polling
	PollInterval  time.Duration
	PollWorkers   int
	PollQueueSize int
	WatchTargets  []domain.WatchTarget
	MaxWatched    int

	// Events
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	TrustedProxies []string
	AllowedOrigins []string // websocket origins; empty allows same-host only
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		APIKey:      getEnv("API_KEY", ""),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		SQLitePath:   getEnv("SQLITE_PATH", DefaultSQLitePath),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "gardenkeeper"),
		DBMaxConns:   getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdle:    getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxIdle),
		DBMaxLife:    getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxLife),
		MigrateOnRun: getEnvAsBool("DB_MIGRATE_ON_START", true),

		RPCURL:             getEnv("RPC_URL", ""),
		ChainID:            int64(getEnvAsInt("CHAIN_ID", DefaultChainID)),
		GardenCoreAddress:  getEnv("GARDENCORE_ADDRESS", ""),
		Items1155Address:   getEnv("ITEMS1155_ADDRESS", ""),
		GardenTokenAddress: getEnv("GARDEN_TOKEN_ADDRESS", ""),
		ClockSource:        strings.ToLower(getEnv("CLOCK_SOURCE", ClockSourceWall)),
		RPCTimeout:         getEnvAsDuration("RPC_TIMEOUT", DefaultRPCTimeout),

		SeedCatalogPath: getEnv("SEED_CATALOG_PATH", ConfigPathSeedCatalog),
		SeedCacheTTL:    getEnvAsDuration("SEED_CACHE_TTL", DefaultSeedCacheTTL),

		PollInterval:  getEnvAsDuration("POLL_INTERVAL", DefaultPollInterval),
		PollWorkers:   getEnvAsInt("POLL_WORKERS", DefaultPollWorkers),
		PollQueueSize: getEnvAsInt("POLL_QUEUE_SIZE", DefaultPollQueueSize),
		MaxWatched:    getEnvAsInt("MAX_WATCHED_PLOTS", DefaultMaxWatchedPlots),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	targets, err := ParseWatchTargets(getEnv("WATCH_PLOTS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_PLOTS value: %w", err)
	}
	cfg.WatchTargets = targets

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC_URL environment variable must be set")
	}
	if !common.IsHexAddress(cfg.GardenCoreAddress) {
		return nil, fmt.Errorf("GARDENCORE_ADDRESS must be a hex address, got %q", cfg.GardenCoreAddress)
	}
	if !common.IsHexAddress(cfg.Items1155Address) {
		return nil, fmt.Errorf("ITEMS1155_ADDRESS must be a hex address, got %q", cfg.Items1155Address)
	}
	if cfg.GardenTokenAddress != "" && !common.IsHexAddress(cfg.GardenTokenAddress) {
		return nil, fmt.Errorf("GARDEN_TOKEN_ADDRESS must be a hex address, got %q", cfg.GardenTokenAddress)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverSQLite, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.ClockSource {
	case ClockSourceWall, ClockSourceChain:
	default:
		return nil, fmt.Errorf("unsupported CLOCK_SOURCE %q", cfg.ClockSource)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if cfg.MaxWatched < len(cfg.WatchTargets) || cfg.MaxWatched <= 0 {
		return nil, fmt.Errorf("MAX_WATCHED_PLOTS must be positive and cover the %d WATCH_PLOTS entries", len(cfg.WatchTargets))
	}

	return cfg, nil
}

// ParseWatchTargets parses "0xPLAYER:PLOT,0xPLAYER:PLOT"
func ParseWatchTargets(raw string) ([]domain.WatchTarget, error) {
	var targets []domain.WatchTarget
	for _, item := range splitList(raw) {
		player, plot, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("%w: expected player:plot, got %q", domain.ErrInvalidInput, item)
		}
		if !common.IsHexAddress(player) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPlayer, player)
		}
		plotID, err := strconv.ParseUint(plot, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPlot, plot)
		}
		targets = append(targets, domain.WatchTarget{
			Player: common.HexToAddress(player).Hex(),
			PlotID: uint16(plotID),
		})
	}
	return targets, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
