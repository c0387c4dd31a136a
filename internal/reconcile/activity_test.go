package reconcile

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

func TestPostActivity_NewestFirstAndCapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		f.clock.Advance(time.Second)
		_, err := f.svc.PostActivity(ctx, alice, domain.ActivityDepth, fmt.Sprintf("%d000 ft", i))
		require.NoError(t, err)
	}

	got, err := f.svc.RecentActivities(ctx, 50)
	require.NoError(t, err)
	require.Len(t, got, 5, "feed is trimmed to its cap")
	assert.Equal(t, "7000 ft", got[0].Details)
	assert.Equal(t, "3000 ft", got[4].Details)
	assert.Equal(t, "Alice", got[0].PlayerName)
}

func TestPostActivity_UsesRankedName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.SaveSnapshot(ctx, alice, f.snapshot("Stone Cold", 1, 1, 0))
	require.NoError(t, err)

	a, err := f.svc.PostActivity(ctx, alice, domain.ActivityBiome, "  Stone Caverns  ")
	require.NoError(t, err)
	assert.Equal(t, "Stone Cold", a.PlayerName)
	assert.Equal(t, "Stone Caverns", a.Details)
	assert.NotEmpty(t, a.ID)

	a, err = f.svc.PostActivity(ctx, carol, domain.ActivityCustom, strings.Repeat("x", 500))
	require.NoError(t, err)
	assert.Equal(t, AnonymousName, a.PlayerName)
	assert.Len(t, a.Details, MaxActivityDetails)
}

func TestPostActivity_RejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PostActivity(context.Background(), alice, "brag", "hi")

	assert.ErrorIs(t, err, domain.ErrInvalidActivity)
}

func TestPostActivity_Broadcasts(t *testing.T) {
	b := new(MockBroadcaster)
	f := newFixture(t, WithBroadcaster(b))
	b.On("PublishActivity", mock.MatchedBy(func(a domain.Activity) bool {
		return a.ActivityType == domain.ActivityAchievement && a.Details == "Thousand Club"
	})).Once()

	_, err := f.svc.PostActivity(context.Background(), alice, domain.ActivityAchievement, "Thousand Club")

	require.NoError(t, err)
	b.AssertExpectations(t)
}
