package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Chain metric names
const (
	MetricNameChainCallDuration = "chain_call_duration_seconds"
	MetricNameChainCallErrors   = "chain_call_errors_total"
)

// Garden metric names
const (
	MetricNamePollsTotal       = "garden_polls_total"
	MetricNamePollErrors       = "garden_poll_errors_total"
	MetricNamePollDuration     = "garden_poll_duration_seconds"
	MetricNameDecodeFailures   = "garden_cell_decode_failures_total"
	MetricNameCellTransitions  = "garden_cell_transitions_total"
	MetricNameReadyCells       = "garden_ready_cells"
	MetricNameWatchedPlots     = "garden_watched_plots"
	MetricNameSnapshotsWritten = "garden_snapshots_written_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Chain metric help text
const (
	HelpTextChainCallDuration = "Latency of JSON-RPC contract reads in seconds"
	HelpTextChainCallErrors   = "Total number of failed JSON-RPC contract reads"
)

// Garden metric help text
const (
	HelpTextPollsTotal       = "Total number of plot polls executed"
	HelpTextPollErrors       = "Total number of plot polls that failed"
	HelpTextPollDuration     = "Duration of a single plot poll in seconds"
	HelpTextDecodeFailures   = "Total number of packed cells that failed to decode"
	HelpTextCellTransitions  = "Total number of observed cell transitions"
	HelpTextReadyCells       = "Harvestable cells in the most recent poll of a plot"
	HelpTextWatchedPlots     = "Number of plots currently watched by the poller"
	HelpTextSnapshotsWritten = "Total number of cell snapshots persisted"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelSeed   = "seed"
	LabelPlot   = "plot"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RPCLatencyBuckets covers public RPC endpoints, which are slower than local handlers
var RPCLatencyBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected type"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
