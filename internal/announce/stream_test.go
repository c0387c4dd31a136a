package announce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

// flakyStream fails the first request, then serves the hub.
func flakyStream(t *testing.T, hub *sse.Hub) string {
	t.Helper()
	var calls atomic.Int32
	stream := sse.Handler(hub)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		stream(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestStream_ReconnectsAndDispatches(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	stream := NewStream(StreamConfig{
		URL:            flakyStream(t, hub),
		Types:          []string{sse.ActivityEventType(domain.ActivityAchievement)},
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	})

	got := make(chan sse.Event, 1)
	stream.OnEvent(sse.ActivityEventType(domain.ActivityAchievement), func(_ context.Context, e sse.Event) error {
		got <- e
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- stream.Run(ctx) }()

	require.Eventually(t, stream.IsConnected, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, stream.Reconnects(), int64(1))

	// filtered out by ?types=
	hub.PublishActivity(domain.Activity{PlayerName: "Digger", ActivityType: domain.ActivityCustom, Details: "hi"})
	hub.PublishActivity(domain.Activity{PlayerName: "Digger", ActivityType: domain.ActivityAchievement, Details: "First Dig"})

	select {
	case e := <-got:
		assert.Equal(t, "activity.achievement", e.Type)
		assert.Contains(t, string(e.Payload), "First Dig")
	case <-time.After(2 * time.Second):
		t.Fatal("activity event not dispatched")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, stream.IsConnected())
}

func TestStream_BackoffIsCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	stream := NewStream(StreamConfig{URL: srv.URL, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond})
	assert.Equal(t, 2*time.Millisecond, stream.max)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, stream.Run(ctx))
	assert.Greater(t, stream.Reconnects(), int64(3))
}

func TestNewStream_Defaults(t *testing.T) {
	s := NewStream(StreamConfig{URL: "http://example.invalid"})
	assert.Equal(t, DefaultInitialBackoff, s.initial)
	assert.Equal(t, DefaultMaxBackoff, s.max)
}
