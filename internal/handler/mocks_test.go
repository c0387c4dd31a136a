package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// MockService implements every handler-facing service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) LoadSnapshot(ctx context.Context, id domain.Identity) (*domain.LoadResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadResult), args.Error(1)
}

func (m *MockService) SaveSnapshot(ctx context.Context, id domain.Identity, snap domain.PlayerSnapshot) (*domain.SaveResult, error) {
	args := m.Called(ctx, id, snap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaveResult), args.Error(1)
}

func (m *MockService) ResetSnapshot(ctx context.Context, id domain.Identity) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) RegisterName(ctx context.Context, id domain.Identity, requested string) (string, error) {
	args := m.Called(ctx, id, requested)
	return args.String(0), args.Error(1)
}

func (m *MockService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockService) GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalStats), args.Error(1)
}

func (m *MockService) GetDailyGoals(ctx context.Context) ([]domain.DailyGoal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyGoal), args.Error(1)
}

func (m *MockService) ContributeGoals(ctx context.Context, c domain.GoalContribution) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockService) PostActivity(ctx context.Context, id domain.Identity, activityType domain.ActivityType, details string) (*domain.Activity, error) {
	args := m.Called(ctx, id, activityType, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockService) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockService) AdminOverview(ctx context.Context) (*domain.AdminOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminOverview), args.Error(1)
}

func (m *MockService) AdminUpsertLeaderboard(ctx context.Context, players []domain.PlayerScore) (int, error) {
	args := m.Called(ctx, players)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockTokenMinter mocks TokenMinter
type MockTokenMinter struct {
	mock.Mock
}

func (m *MockTokenMinter) Mint(playerID, name string, ttl time.Duration) (string, error) {
	args := m.Called(playerID, name, ttl)
	return args.String(0), args.Error(1)
}
