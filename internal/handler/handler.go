// Package handler exposes the game, community and admin operations over HTTP.
package handler

import (
	"context"
	"time"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// GameService is the per-player half of the reconcile service.
type GameService interface {
	LoadSnapshot(ctx context.Context, id domain.Identity) (*domain.LoadResult, error)
	SaveSnapshot(ctx context.Context, id domain.Identity, snap domain.PlayerSnapshot) (*domain.SaveResult, error)
	ResetSnapshot(ctx context.Context, id domain.Identity) error
	RegisterName(ctx context.Context, id domain.Identity, requested string) (string, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// CommunityService is the shared, cross-player state.
type CommunityService interface {
	GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error)
	GetDailyGoals(ctx context.Context) ([]domain.DailyGoal, error)
	ContributeGoals(ctx context.Context, c domain.GoalContribution) error
	PostActivity(ctx context.Context, id domain.Identity, activityType domain.ActivityType, details string) (*domain.Activity, error)
	RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}

// AdminService is the operator surface.
type AdminService interface {
	AdminOverview(ctx context.Context) (*domain.AdminOverview, error)
	AdminUpsertLeaderboard(ctx context.Context, players []domain.PlayerScore) (int, error)
}

// TokenMinter signs player tokens for bots and testing.
type TokenMinter interface {
	Mint(playerID, name string, ttl time.Duration) (string, error)
}
