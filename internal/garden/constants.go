package garden

import "time"

// Seed config cache settings
const (
	// SeedCacheSchemaVersion invalidates cached entries when the cached shape changes
	SeedCacheSchemaVersion = "1.0"
	DefaultSeedCacheSize   = 256
	DefaultSeedCacheTTL    = time.Minute
)

// Clock basis reported on plot views
const (
	ClockBasisWall  = "wall"
	ClockBasisChain = "chain"
)

// Log messages
const (
	LogMsgPlotRead          = "Plot read"
	LogMsgClickResolved     = "Click resolved"
	LogMsgSeedConfigFetched = "Fetched on-chain seed config"
	LogMsgDecodeFailed      = "Failed to decode plot cell"
	LogMsgTokenBalanceRead  = "Token balance read"
)
