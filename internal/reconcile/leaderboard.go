package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
)

// MergeLeaderboards combines the money and depth top lists into one view.
// Money entries come first in their order, then names only present in the
// depth list. A name in both lists carries both scores; a missing score is 0.
// Rank is the 1-based output position.
func MergeLeaderboards(money, depth []domain.ScoredMember) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, 0, len(money)+len(depth))
	pos := make(map[string]int, len(money)+len(depth))

	for _, m := range money {
		if i, ok := pos[m.Member]; ok {
			out[i].Money = m.Score
			continue
		}
		pos[m.Member] = len(out)
		out = append(out, domain.LeaderboardEntry{PlayerName: m.Member, Money: m.Score})
	}
	for _, d := range depth {
		if i, ok := pos[d.Member]; ok {
			out[i].Depth = d.Score
			continue
		}
		pos[d.Member] = len(out)
		out = append(out, domain.LeaderboardEntry{PlayerName: d.Member, Depth: d.Score})
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// GetLeaderboard returns the merged top-limit view, served from cache when
// fresh. limit <= 0 uses the configured size.
func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.cfg.LeaderboardSize
	}
	if cached, ok := s.cache.Get(limit); ok {
		s.observer.LeaderboardCache(true)
		return cached, nil
	}
	s.observer.LeaderboardCache(false)

	entries, err := s.readLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(limit, entries)
	return entries, nil
}

func (s *Service) readLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	money, depth, err := s.topLists(ctx, limit)
	if err != nil {
		return nil, err
	}
	return MergeLeaderboards(money, depth), nil
}

func (s *Service) topLists(ctx context.Context, limit int) (money, depth []domain.ScoredMember, err error) {
	stop := int64(limit) - 1
	if money, err = s.store.ZRange(ctx, s.keys.money(), 0, stop, true); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgReadLeaderboard, err)
	}
	if depth, err = s.store.ZRange(ctx, s.keys.depth(), 0, stop, true); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgReadLeaderboard, err)
	}
	return money, depth, nil
}

// standing is the player's 1-based money rank, or nil when unranked.
func (s *Service) standing(ctx context.Context, name string) (*domain.PlayerStanding, error) {
	if name == "" {
		return nil, nil
	}
	asc, err := s.store.ZRank(ctx, s.keys.money(), name)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadStanding, err)
	}
	total, err := s.store.ZCard(ctx, s.keys.money())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadStanding, err)
	}
	return &domain.PlayerStanding{PlayerName: name, Rank: int(total - asc), Total: int(total)}, nil
}

// WarmLeaderboard refreshes the default cached view.
func (s *Service) WarmLeaderboard(ctx context.Context) error {
	entries, err := s.readLeaderboard(ctx, s.cfg.LeaderboardSize)
	if err != nil {
		return err
	}
	s.cache.Set(s.cfg.LeaderboardSize, entries)
	return nil
}
