package sse

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/TheDigger_Go/internal/logger"
)

// ParseTypes reads the comma separated ?types= filter.
func ParseTypes(r *http.Request) []string {
	filterParam := r.URL.Query().Get(QueryParamTypes)
	if filterParam == "" {
		return nil
	}
	var types []string
	for _, t := range strings.Split(filterParam, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// Handler returns an HTTP handler for SSE connections
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		eventTypes := ParseTypes(r)
		client := hub.Register(eventTypes)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		connected, err := NewEvent(client.ID, EventTypeConnected, ConnectedPayload{
			ClientID: client.ID,
			Filters:  eventTypes,
		})
		if err == nil {
			if !writeEvent(w, flusher, connected) {
				return
			}
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub shutting down
					return
				}
				if !writeEvent(w, flusher, event) {
					log.Warn(LogMsgWriteError, "client_id", client.ID)
					return
				}

			case <-ticker.C:
				if !writeEvent(w, flusher, Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

// NewEvent builds an Event with a JSON payload.
func NewEvent(id, eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: id, Type: eventType, Timestamp: time.Now().Unix(), Payload: data}, nil
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		return true
	}
	if _, err := w.Write(msg); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
