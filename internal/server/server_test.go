package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/achievement"
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/handler"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/progression"
	"github.com/osse101/TheDigger_Go/internal/reconcile"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

type routerFixture struct {
	router http.Handler
	token  string
	engine *progression.Engine
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	cat := catalog.MustDefault()
	book, err := achievement.Load(cat)
	require.NoError(t, err)
	engine := progression.NewEngine(cat, book)
	svc := reconcile.NewService(kvstore.NewMemory(), engine, clock.NewReal(), reconcile.Config{Namespace: "test"})

	resolver, tokens := newTestResolver(t, false)
	token, err := tokens.Mint("player-1", "Digger", time.Hour)
	require.NoError(t, err)

	router := NewRouter(Options{
		Version:     "test",
		StoreDriver: "memory",
		SaveRate:    0.001,
		SaveBurst:   1,
	}, svc, resolver, tokens, sse.NewHub())

	return &routerFixture{router: router, token: token, engine: engine}
}

func (f *routerFixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *routerFixture) bearer() map[string]string {
	return map[string]string{identity.HeaderAuthorization: identity.BearerPrefix + f.token}
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newRouterFixture(t)

	for _, path := range []string{
		"/healthz",
		"/readyz",
		"/version",
		"/metrics",
		"/api/v1/leaderboard",
		"/api/v1/community/stats",
		"/api/v1/community/goals",
		"/api/v1/community/activity",
	} {
		t.Run(path, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, path, nil, nil)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, HeaderValueNoSniff, rr.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_GameRoutesNeedIdentity(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/game/init", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/api/v1/community/activity", nil, nil).Code)

	rr := f.do(t, http.MethodGet, "/api/v1/game/init", nil, f.bearer())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp handler.InitResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Digger", resp.Snapshot.PlayerName)
}

func TestRouter_SaveIsRateLimited(t *testing.T) {
	f := newRouterFixture(t)
	body := handler.SaveRequest{Snapshot: ptr(f.engine.NewSnapshot("Digger"))}

	first := f.do(t, http.MethodPost, "/api/v1/game/save", body, f.bearer())
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	second := f.do(t, http.MethodPost, "/api/v1/game/save", body, f.bearer())
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouter_AdminNeedsAPIKey(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/admin/overview", nil, f.bearer()).Code)

	rr := f.do(t, http.MethodGet, "/api/v1/admin/overview", nil, map[string]string{identity.HeaderAPIKey: testAPIKey})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func ptr[T any](v T) *T { return &v }
