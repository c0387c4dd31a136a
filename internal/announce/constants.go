package announce

import "time"

// Stream reconnection
const (
	// DefaultInitialBackoff is the first wait after a dropped stream
	DefaultInitialBackoff = 1 * time.Second

	// DefaultMaxBackoff caps the reconnect wait
	DefaultMaxBackoff = 30 * time.Second

	// backoffMultiplier is the multiplier for exponential backoff
	backoffMultiplier = 2.0
)

// Embed colours
const (
	colorAchievement = 0xFFD700 // Gold
	colorBiome       = 0x2ECC71 // Green
	colorTool        = 0x5865F2 // Discord Blurple
	colorDepth       = 0x8B4513 // Brown
)

// Embed text
const (
	titleAchievement = "Achievement Unlocked!"
	titleBiome       = "New Biome Discovered!"
	titleTool        = "Tool Upgrade!"
	titleDepth       = "Depth Milestone!"

	descAchievement = "**%s** unlocked **%s**"
	descBiome       = "**%s** broke through into **%s**"
	descTool        = "**%s** is now digging with a **%s**"
	descDepth       = "**%s** reached **%s**"

	footerText = "TheDigger"
)

// Log messages
const (
	LogMsgStreamConnected  = "Activity stream connected"
	LogMsgStreamStopped    = "Activity stream stopped"
	LogMsgStreamFailed     = "Activity stream failed, reconnecting"
	LogMsgHandlerError     = "Activity handler error"
	LogMsgParseError       = "Failed to parse activity event"
	LogMsgNotificationSent = "Discord notification sent"
	LogMsgNotificationFail = "Failed to send Discord notification"
)

// Error messages
const (
	ErrMsgStreamClosed = "stream closed by server"
)
