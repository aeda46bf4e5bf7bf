package event

import "time"

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Retry configuration defaults
const (
	DefaultRetryMaxAttempts = 3
	DefaultRetryDelay       = 500 * time.Millisecond
)

// DeadLetterFilePermissions is the file permission mode for dead-letter files
const DeadLetterFilePermissions = 0o644

// Log message constants
const (
	LogMsgEventPublishFailed  = "Event publish failed, retrying in background"
	LogMsgEventRetrySucceeded = "Event retry succeeded"
	LogMsgEventRetryFailed    = "Event retry failed"
	LogMsgEventDeadLettered   = "Event dead-lettered"
	LogMsgDeadLetterFailed    = "Failed to write to dead letter"
	LogMsgShutdownTimeout     = "Resilient publisher shutdown timed out"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay returns the exponential backoff delay for an attempt:
// base, 2*base, 4*base...
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
