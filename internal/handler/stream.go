package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

// WebSocket keepalive timing
const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsReadLimit  = 512
)

// ActivityHub is the subscription side of the activity broadcaster.
type ActivityHub interface {
	Register(eventTypes []string) *sse.Client
	Unregister(clientID string)
}

// StreamHandlers bridges hub subscriptions onto WebSocket connections
type StreamHandlers struct {
	hub      ActivityHub
	upgrader websocket.Upgrader
}

// NewStreamHandlers creates WebSocket stream handlers
func NewStreamHandlers(hub ActivityHub) *StreamHandlers {
	return &StreamHandlers{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// game clients are embedded in host pages on other origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleWebSocket streams activity events as JSON text frames
// @Summary Activity WebSocket
// @Description Upgrades to a WebSocket carrying the same events as the SSE stream
// @Tags community
// @Param types query string false "Comma separated event types"
// @Router /community/activity/ws [get]
func (h *StreamHandlers) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the HTTP error
			log.Warn(LogMsgWebSocketUpgrade, "error", err)
			return
		}
		defer conn.Close()

		client := h.hub.Register(sse.ParseTypes(r))
		defer h.hub.Unregister(client.ID)
		log.Info(LogMsgWebSocketOpened, "client_id", client.ID)

		closed := make(chan struct{})
		go readPump(conn, closed)

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-closed:
				log.Info(LogMsgWebSocketClosed, "client_id", client.ID)
				return

			case event, ok := <-client.EventChannel:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					return
				}

			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

// readPump discards client frames and keeps the read deadline alive on pong.
// It closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
