package event

import "time"

// EventSchemaVersion is stamped on every event this build publishes
const EventSchemaVersion = "1.0"

// MetadataKeyAccountID is set on events that belong to one account
const MetadataKeyAccountID = "account_id"

// Retry queue
const (
	RetryQueueBufferSize = 1000
	maxRetryShift        = 16
)

// Kafka sink
const (
	KafkaDefaultWorkers   = 4
	KafkaQueueBufferSize  = 256
	KafkaWriteTimeout     = 10 * time.Second
	KafkaMaxWriteAttempts = 3
)

// Dead-letter file
const (
	DeadLetterFilePermissions = 0o644
	// Longest line ReadDeadLetters accepts
	deadLetterMaxLine = 1 << 20
)

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgKafkaWriteFailed = "Failed to send event to Kafka"
	LogMsgKafkaQueueFull   = "Kafka sink queue full, event dropped"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles base for every attempt after the first: base, 2·base, 4·base...
// The multiplier stops growing after maxRetryShift doublings.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if shift > maxRetryShift {
		shift = maxRetryShift
	}
	return baseDelay << shift
}
