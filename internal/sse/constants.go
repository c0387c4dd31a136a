package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// MaxLineBytes bounds a single line read by the Subscriber
	MaxLineBytes = 64 * 1024
)

// Event types
const (
	// EventTypeActivityPrefix prefixes every activity event, e.g. "activity.achievement"
	EventTypeActivityPrefix = "activity."

	// EventTypeConnected is the first event a new stream receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes = "types"
)

// Error Messages
const (
	ErrMsgStreamingUnsupported = "SSE not supported"
	ErrMsgBuildRequest         = "failed to build stream request: %w"
	ErrMsgConnect              = "failed to connect to stream: %w"
	ErrMsgUnexpectedStatus     = "stream returned status %d"
	ErrMsgDecodeEvent          = "failed to decode event %q: %w"
	ErrMsgReadStream           = "failed to read stream: %w"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
)
