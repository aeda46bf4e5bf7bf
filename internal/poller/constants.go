package poller

import "time"

// Defaults
const (
	DefaultInterval    = 4 * time.Second
	DefaultWorkers     = 4
	DefaultQueueSize   = 64
	DefaultPollTimeout = 15 * time.Second
	DefaultMaxWatched  = 256
)

// Log messages
const (
	LogMsgPollerStarted     = "Poller started"
	LogMsgPollerStopped     = "Poller stopped"
	LogMsgPlotWatched       = "Watching plot"
	LogMsgPlotUnwatched     = "Stopped watching plot"
	LogMsgPollFailed        = "Plot poll failed"
	LogMsgPollSkipped       = "Plot poll skipped, worker queue full"
	LogMsgTransitionPublish = "Failed to publish cell transition"
	LogMsgCellTransition    = "Cell transition"
)
