package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

func TestMergeLeaderboards(t *testing.T) {
	tests := []struct {
		name  string
		money []domain.ScoredMember
		depth []domain.ScoredMember
		want  []domain.LeaderboardEntry
	}{
		{
			name: "empty",
			want: []domain.LeaderboardEntry{},
		},
		{
			name:  "depth only names are appended",
			money: []domain.ScoredMember{{Member: "A", Score: 30}, {Member: "B", Score: 20}},
			depth: []domain.ScoredMember{{Member: "C", Score: 900}, {Member: "A", Score: 5}},
			want: []domain.LeaderboardEntry{
				{PlayerName: "A", Money: 30, Depth: 5, Rank: 1},
				{PlayerName: "B", Money: 20, Depth: 0, Rank: 2},
				{PlayerName: "C", Money: 0, Depth: 900, Rank: 3},
			},
		},
		{
			name:  "duplicates collapse",
			money: []domain.ScoredMember{{Member: "A", Score: 1}, {Member: "A", Score: 2}},
			want:  []domain.LeaderboardEntry{{PlayerName: "A", Money: 2, Rank: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeLeaderboards(tt.money, tt.depth))
		})
	}
}

func TestGetLeaderboard_LimitsEachRanking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, name := range []string{"Aaa", "Bbb", "Ccc"} {
		require.NoError(t, f.store.ZAdd(ctx, f.svc.keys.money(), name, float64(100*(i+1))))
		require.NoError(t, f.store.ZAdd(ctx, f.svc.keys.depth(), name, float64(100*(3-i))))
	}

	got, err := f.svc.GetLeaderboard(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{PlayerName: "Ccc", Money: 300, Rank: 1},
		{PlayerName: "Aaa", Depth: 300, Rank: 2},
	}, got)
}

func TestGetLeaderboard_CachedUntilSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.SaveSnapshot(ctx, alice, f.snapshot("Alice", 10, 1, 0))
	require.NoError(t, err)

	first, err := f.svc.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// written behind the service's back: served stale from cache
	require.NoError(t, f.store.ZAdd(ctx, f.svc.keys.money(), "Ghost", 99))
	cached, err := f.svc.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	// a save purges the cache
	_, err = f.svc.SaveSnapshot(ctx, bob, f.snapshot("Bob", 5, 1, 0))
	require.NoError(t, err)
	fresh, err := f.svc.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}

func TestWarmLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.ZAdd(ctx, f.svc.keys.money(), "Early", 1))

	require.NoError(t, f.svc.WarmLeaderboard(ctx))

	cached, ok := f.svc.cache.Get(f.svc.cfg.LeaderboardSize)
	require.True(t, ok)
	assert.Equal(t, "Early", cached[0].PlayerName)
}
