package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

func TestHandleWebSocket_RelaysActivities(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(NewStreamHandlers(hub).HandleWebSocket())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?types=activity.achievement"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.PublishActivity(domain.Activity{ID: "x", ActivityType: domain.ActivityDepth})
	hub.PublishActivity(domain.Activity{ID: "a1", ActivityType: domain.ActivityAchievement, Details: "First Click"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev sse.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "activity.achievement", ev.Type)
	assert.Contains(t, string(ev.Payload), "First Click")
}

func TestHandleWebSocket_UnregistersOnClose(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(NewStreamHandlers(hub).HandleWebSocket())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
