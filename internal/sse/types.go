package sse

import (
	"strings"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// ConnectedPayload is sent once when a stream opens.
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters,omitempty"`
}

// ActivityEventType is the event type an activity is published under.
func ActivityEventType(t domain.ActivityType) string {
	return EventTypeActivityPrefix + string(t)
}

// IsActivityEvent reports whether eventType carries a domain.Activity payload.
func IsActivityEvent(eventType string) bool {
	return strings.HasPrefix(eventType, EventTypeActivityPrefix)
}
