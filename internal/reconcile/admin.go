package reconcile

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// AdminOverview gathers the operator view of the namespace.
func (s *Service) AdminOverview(ctx context.Context) (*domain.AdminOverview, error) {
	stats, err := s.GetGlobalStats(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAdminOverview, err)
	}
	allMoney, err := s.store.ZRange(ctx, s.keys.money(), 0, -1, true)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAdminOverview, err)
	}
	allDepth, err := s.store.ZRange(ctx, s.keys.depth(), 0, -1, true)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAdminOverview, err)
	}
	names, err := s.store.HGetAll(ctx, s.keys.nameIndex())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAdminOverview, err)
	}
	history, err := s.GoalHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAdminOverview, err)
	}

	return &domain.AdminOverview{
		Namespace:        s.cfg.Namespace,
		TotalPlayers:     stats.TotalPlayers,
		RegisteredNames:  stats.RegisteredNames,
		GlobalClicks:     stats.GlobalClicks,
		MoneyLeaderboard: allMoney[:min(len(allMoney), s.cfg.AdminListSize)],
		DepthLeaderboard: allDepth[:min(len(allDepth), s.cfg.AdminListSize)],
		AllPlayers:       MergeLeaderboards(allMoney, allDepth),
		NameIndex:        names,
		GoalHistory:      history,
	}, nil
}

// AdminUpsertLeaderboard writes operator-supplied scores. Names not yet
// registered are reserved under domain.AdminOwner; names a player owns keep
// their owner. It returns the number of rows applied.
func (s *Service) AdminUpsertLeaderboard(ctx context.Context, players []domain.PlayerScore) (int, error) {
	applied := 0
	for _, p := range players {
		name, err := ValidateName(p.Name)
		if err != nil {
			return applied, fmt.Errorf(ErrMsgAdminUpsert, p.Name, err)
		}
		folded := FoldName(name)
		won, err := s.store.HSetNX(ctx, s.keys.nameOwner(), folded, domain.AdminOwner)
		if err != nil {
			return applied, fmt.Errorf(ErrMsgAdminUpsert, name, err)
		}
		if won {
			if err := s.store.HSet(ctx, s.keys.nameIndex(), folded, name); err != nil {
				return applied, fmt.Errorf(ErrMsgAdminUpsert, name, err)
			}
		}
		member, err := s.canonicalName(ctx, folded, name)
		if err != nil {
			return applied, fmt.Errorf(ErrMsgAdminUpsert, name, err)
		}

		if p.Money != nil {
			if err := s.store.ZAdd(ctx, s.keys.money(), member, math.Floor(*p.Money)); err != nil {
				return applied, fmt.Errorf(ErrMsgAdminUpsert, name, err)
			}
		}
		if p.Depth != nil {
			if err := s.store.ZAdd(ctx, s.keys.depth(), member, math.Floor(*p.Depth)); err != nil {
				return applied, fmt.Errorf(ErrMsgAdminUpsert, name, err)
			}
		}
		applied++
	}
	s.cache.Invalidate()
	logger.FromContext(ctx).Info(LogMsgAdminUpsert, "players", applied)
	return applied, nil
}
