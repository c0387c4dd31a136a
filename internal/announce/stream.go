// Package announce relays community activity from the server's event stream
// to Discord.
package announce

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

// EventHandler handles one decoded stream event.
type EventHandler func(ctx context.Context, event sse.Event) error

// StreamConfig locates the stream and tunes reconnects.
type StreamConfig struct {
	URL            string
	Header         http.Header
	Types          []string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Stream keeps one subscription to the activity stream open, reconnecting
// with exponential backoff whenever it drops.
type Stream struct {
	sub        *sse.Subscriber
	initial    time.Duration
	max        time.Duration
	mu         sync.RWMutex
	handlers   map[string][]EventHandler
	connected  atomic.Bool
	reconnects atomic.Int64
}

// NewStream builds a stream. An http.Client without a timeout is used since
// the connection is long-lived.
func NewStream(cfg StreamConfig) *Stream {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = DefaultInitialBackoff
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = max(DefaultMaxBackoff, cfg.InitialBackoff)
	}
	url := cfg.URL
	if len(cfg.Types) > 0 {
		url += "?" + sse.QueryParamTypes + "=" + strings.Join(cfg.Types, ",")
	}
	return &Stream{
		sub:      sse.NewSubscriber(&http.Client{}, url, cfg.Header),
		initial:  cfg.InitialBackoff,
		max:      cfg.MaxBackoff,
		handlers: make(map[string][]EventHandler),
	}
}

// OnEvent registers a handler for a specific event type
func (s *Stream) OnEvent(eventType string, h EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = append(s.handlers[eventType], h)
}

// IsConnected reports whether a stream is currently open.
func (s *Stream) IsConnected() bool {
	return s.connected.Load()
}

// Reconnects counts failed or dropped connections so far.
func (s *Stream) Reconnects() int64 {
	return s.reconnects.Load()
}

// Run blocks until ctx is cancelled.
func (s *Stream) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	backoff := s.initial
	failures := 0

	for {
		received := false
		err := s.sub.Stream(ctx, func(e sse.Event) error {
			if !received {
				received = true
				s.connected.Store(true)
				log.Info(LogMsgStreamConnected)
			}
			s.dispatch(ctx, e)
			return nil
		})
		s.connected.Store(false)

		if ctx.Err() != nil {
			log.Info(LogMsgStreamStopped)
			return nil
		}
		if err == nil {
			err = errors.New(ErrMsgStreamClosed)
		}
		// a stream that delivered anything counts as a successful connect
		if received {
			backoff = s.initial
			failures = 0
		}
		failures++
		s.reconnects.Add(1)
		log.Warn(LogMsgStreamFailed, "error", err, "backoff", backoff, "consecutive_failures", failures)

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			log.Info(LogMsgStreamStopped)
			return nil
		case <-t.C:
		}
		backoff = min(time.Duration(float64(backoff)*backoffMultiplier), s.max)
	}
}

func (s *Stream) dispatch(ctx context.Context, e sse.Event) {
	s.mu.RLock()
	handlers := s.handlers[e.Type]
	s.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerError, "error", err, "event_type", e.Type)
		}
	}
}
