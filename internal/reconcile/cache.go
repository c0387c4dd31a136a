package reconcile

import (
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// leaderboardCache holds merged top-N views keyed by N. Every save purges
// it, so a reader sees at most one TTL of staleness from other processes.
type leaderboardCache struct {
	lru *expirable.LRU[int, []domain.LeaderboardEntry]
}

func newLeaderboardCache(size int, ttl time.Duration) *leaderboardCache {
	return &leaderboardCache{
		lru: expirable.NewLRU[int, []domain.LeaderboardEntry](size, nil, ttl),
	}
}

func (c *leaderboardCache) Get(limit int) ([]domain.LeaderboardEntry, bool) {
	entries, ok := c.lru.Get(limit)
	if !ok {
		return nil, false
	}
	return slices.Clone(entries), true
}

func (c *leaderboardCache) Set(limit int, entries []domain.LeaderboardEntry) {
	c.lru.Add(limit, slices.Clone(entries))
}

func (c *leaderboardCache) Invalidate() {
	c.lru.Purge()
}
