package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path and query parameter messages
	ErrMsgInvalidPlayerParam = "Invalid player address"
	ErrMsgInvalidPlotParam   = "Invalid plot id"
	ErrMsgInvalidCellParam   = "Invalid cell index"
	ErrMsgInvalidLimit       = "Invalid limit parameter"

	// Operation failures
	ErrMsgGetPlotFailed      = "Failed to read plot"
	ErrMsgGetInventoryFailed = "Failed to read inventory"
	ErrMsgGetBalanceFailed   = "Failed to read token balance"
	ErrMsgGetSeedsFailed     = "Failed to read seeds"
	ErrMsgClickFailed        = "Failed to resolve click"
	ErrMsgQuoteFailed        = "Failed to quote trade"
	ErrMsgHistoryFailed      = "Failed to read cell history"
	ErrMsgWatchFailed        = "Failed to update watch list"
	ErrMsgMetricsFailed      = "Failed to gather metrics"
)

// Success messages for API responses
const (
	MsgWatchAdded   = "Plot watched"
	MsgWatchRemoved = "Plot unwatched"
	MsgNotWatched   = "Plot was not watched"

	MsgSeedCachePurged = "Seed config cache purged"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgInvalidRequest   = "Invalid request"
	LogMsgServiceError     = "Service call failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgPlotServed       = "Plot served"
	LogMsgClickResolved    = "Click resolved"
	LogMsgQuoteServed      = "Trade quoted"
	LogMsgWatchListChanged = "Watch list changed"
	LogMsgSeedCachePurged  = "Seed config cache purged"
)
