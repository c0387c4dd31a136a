package server

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/metrics"
)

// PlayerRateLimiter gives every player id its own token bucket. Idle
// buckets age out of a bounded LRU.
type PlayerRateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *expirable.LRU[string, *rate.Limiter]
}

// NewPlayerRateLimiter allows perSecond events with the given burst per player.
func NewPlayerRateLimiter(perSecond float64, burst int) *PlayerRateLimiter {
	return &PlayerRateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: expirable.NewLRU[string, *rate.Limiter](DefaultRateLimiterSize, nil, DefaultRateLimiterIdle),
	}
}

// Allow reports whether playerID may proceed now.
func (l *PlayerRateLimiter) Allow(playerID string) bool {
	return l.reserve(playerID).Allow()
}

func (l *PlayerRateLimiter) reserve(playerID string) *rate.Limiter {
	if lim, ok := l.limiters.Get(playerID); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	// a concurrent first request may also create one; the extra burst is harmless
	l.limiters.Add(playerID, lim)
	return lim
}

// Middleware refuses with 429 once the caller's bucket is empty. It must run
// after IdentityMiddleware; unidentified requests pass through.
func (l *PlayerRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok || l.Allow(id.PlayerID) {
			next.ServeHTTP(w, r)
			return
		}

		metrics.RateLimited.Inc()
		logger.FromContext(r.Context()).Warn(LogMsgRateLimited, logger.AttrKeyPlayerID, id.PlayerID, "path", r.URL.Path)

		retry := time.Second
		if l.limit > 0 {
			retry = time.Duration(float64(time.Second) / float64(l.limit))
		}
		w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retry.Seconds()))))
		http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
	})
}
