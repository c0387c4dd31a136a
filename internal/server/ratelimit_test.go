package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/metrics"
)

func TestPlayerRateLimiter_PerPlayerBuckets(t *testing.T) {
	limiter := NewPlayerRateLimiter(0.001, 2)

	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))

	// b has its own bucket
	assert.True(t, limiter.Allow("b"))
}

func TestPlayerRateLimiter_Middleware(t *testing.T) {
	limiter := NewPlayerRateLimiter(0.5, 1)
	handler := limiter.Middleware(http.HandlerFunc(okHandler))
	before := testutil.ToFloat64(metrics.RateLimited)

	send := func(id *domain.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/game/save", nil)
		if id != nil {
			req = req.WithContext(identity.WithIdentity(req.Context(), *id))
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	player := &domain.Identity{PlayerID: "p1"}
	assert.Equal(t, http.StatusOK, send(player).Code)

	rr := send(player)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "2", rr.Header().Get(HeaderRetryAfter))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimited))

	// unidentified requests are left to the identity layer
	assert.Equal(t, http.StatusOK, send(nil).Code)
}
