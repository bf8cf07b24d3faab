package roundguard

// Log messages
const (
	LogMsgRoundRejected = "Round rejected, previous round still in flight"
)
