package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 256
	ClientEventBuffer   = 32
	ClientChannelBuffer = 16
)

// KeepaliveInterval is how often an idle stream gets a keepalive comment
const KeepaliveInterval = 30 * time.Second

// Stream-only event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters accepted by the stream handler
const (
	QueryTypes   = "types"
	QueryAccount = "account_id"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgBroadcastDropped   = "SSE broadcast buffer full, event dropped"
	LogMsgClientLagging      = "SSE client buffer full, event skipped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered"
)
