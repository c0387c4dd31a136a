package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/achievement"
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/progression"
	"github.com/osse101/TheDigger_Go/internal/reconcile"
	"github.com/osse101/TheDigger_Go/internal/server"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

const testAPIKey = "roundtrip-key"

// startServer runs the full router over an in-memory store.
func startServer(t *testing.T) string {
	t.Helper()
	cat := catalog.MustDefault()
	book, err := achievement.Load(cat)
	require.NoError(t, err)
	engine := progression.NewEngine(cat, book)
	svc := reconcile.NewService(kvstore.NewMemory(), engine, clock.NewReal(), reconcile.Config{Namespace: "rt"})

	tokens, err := identity.NewTokenService("roundtrip-secret", clock.NewReal())
	require.NoError(t, err)
	resolver := identity.NewResolver(tokens, testAPIKey, true)

	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	router := server.NewRouter(server.Options{
		Version:     "rt",
		StoreDriver: "memory",
		SaveRate:    100,
		SaveBurst:   100,
	}, svc, resolver, tokens, hub)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRoundTrip_PlayerFlow(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{
		BaseURL:    startServer(t),
		APIKey:     testAPIKey,
		PlayerID:   "bot-1",
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)

	require.NoError(t, c.Health(ctx))
	info, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rt", info.Version)

	loaded, err := c.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bot-1", loaded.PlayerID)

	name, err := c.Register(ctx, "Robo Digger")
	require.NoError(t, err)
	assert.Equal(t, "Robo Digger", name)

	snap := loaded.Snapshot
	snap.PlayerName = name
	snap.Money = 250
	snap.Depth = 12
	snap.TotalClicks = 30
	res, err := c.Save(ctx, snap)
	require.NoError(t, err)
	require.NotNil(t, res.PlayerStanding)
	assert.Equal(t, 1, res.PlayerStanding.Rank)

	board, err := c.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Robo Digger", board[0].PlayerName)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30), stats.GlobalClicks)

	require.NoError(t, c.ContributeGoals(ctx, domain.GoalContribution{Depth: 12, Ores: 3, Money: 250}))
	goals, err := c.Goals(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, goals)
	for _, g := range goals {
		assert.Positive(t, g.Current, g.ID)
	}

	require.NoError(t, c.PostActivity(ctx, domain.ActivityCustom, "hello"))
	acts, err := c.Activities(ctx, 5)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "Robo Digger", acts[0].PlayerName)

	require.NoError(t, c.Reset(ctx))
	loaded, err = c.Init(ctx)
	require.NoError(t, err)
	assert.Zero(t, loaded.Snapshot.Money)
}

func TestRoundTrip_AdminAndTokens(t *testing.T) {
	ctx := context.Background()
	admin, err := New(Config{BaseURL: startServer(t), APIKey: testAPIKey, RetryDelay: time.Millisecond})
	require.NoError(t, err)

	money := 1000.0
	updated, err := admin.AdminUpsertLeaderboard(ctx, []domain.PlayerScore{{Name: "Seeded", Money: &money}})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	overview, err := admin.AdminOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rt", overview.Namespace)
	require.NotEmpty(t, overview.MoneyLeaderboard)

	minted, err := admin.MintToken(ctx, "tok-player", "Token Digger", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, minted.Token)
	require.NotNil(t, minted.ExpiresAt)

	player := admin.WithToken(minted.Token)
	loaded, err := player.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-player", loaded.PlayerID)
}

func TestRoundTrip_Unauthorized(t *testing.T) {
	c, err := New(Config{BaseURL: startServer(t), RetryDelay: time.Millisecond})
	require.NoError(t, err)

	_, err = c.Init(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
