package config

import "time"

const (
	// Configuration file paths
	ConfigPathSeedCatalog = "configs/seeds.yaml"
)

// Defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "garden-keeper"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
	DefaultLogDir      = "logs"

	DefaultSQLitePath = "gardenkeeper.db"
	DefaultDBMaxConns = 10
	DefaultDBMaxIdle  = 5 * time.Minute
	DefaultDBMaxLife  = time.Hour

	// Base Sepolia
	DefaultChainID    = 84532
	DefaultRPCTimeout = 10 * time.Second

	DefaultSeedCacheTTL = time.Minute

	DefaultPollInterval  = 4 * time.Second
	DefaultPollWorkers   = 4
	DefaultPollQueueSize = 64
	// DefaultMaxWatchedPlots bounds poll load added through the watch API
	DefaultMaxWatchedPlots = 256

	DefaultEventMaxRetries     = 3
	DefaultEventRetryDelay     = 500 * time.Millisecond
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

// Clock sources used for readiness
const (
	ClockSourceWall  = "wall"
	ClockSourceChain = "chain"
)
