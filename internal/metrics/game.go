package metrics

import (
	"errors"
	"time"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
)

// GameObserver records reconcile service events as Prometheus metrics.
type GameObserver struct{}

// NewGameObserver creates a new GameObserver
func NewGameObserver() GameObserver {
	return GameObserver{}
}

func (GameObserver) LeaderboardCache(hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	LeaderboardCacheLookups.WithLabelValues(result).Inc()
}

func (GameObserver) SnapshotSaved(d time.Duration) {
	SnapshotSaveDuration.Observe(d.Seconds())
}

func (GameObserver) GlobalClicks(total int64) {
	GlobalClicks.Set(float64(total))
}

func (GameObserver) ActivityPosted(t domain.ActivityType) {
	ActivitiesPosted.WithLabelValues(string(t)).Inc()
}

// ObserveStore matches kvstore.ObserveFunc. Missing keys are not failures.
func ObserveStore(op string, d time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		StoreOperationErrors.WithLabelValues(op).Inc()
	}
}
