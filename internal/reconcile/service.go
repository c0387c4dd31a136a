// Package reconcile is the authoritative side of the game: it persists
// player snapshots and derives leaderboards, the name registry, global
// click totals, daily community goals and the activity feed from them.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/concurrency"
	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/progression"
)

// Config tunes one deployment namespace.
type Config struct {
	Namespace       string
	LeaderboardSize int
	AdminListSize   int
	ActivityCap     int
	CacheTTL        time.Duration
	Goals           []domain.GoalDefinition
}

func (c Config) withDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.LeaderboardSize <= 0 {
		c.LeaderboardSize = DefaultLeaderboardSize
	}
	if c.AdminListSize <= 0 {
		c.AdminListSize = DefaultAdminListSize
	}
	if c.ActivityCap <= 0 {
		c.ActivityCap = DefaultActivityCap
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if len(c.Goals) == 0 {
		c.Goals = domain.DefaultGoals
	}
	return c
}

// Observer receives service-level measurements.
type Observer interface {
	LeaderboardCache(hit bool)
	SnapshotSaved(d time.Duration)
	GlobalClicks(delta int64)
	ActivityPosted(t domain.ActivityType)
}

// Broadcaster fans new activities out to live subscribers.
type Broadcaster interface {
	PublishActivity(a domain.Activity)
}

type nopObserver struct{}

func (nopObserver) LeaderboardCache(bool)              {}
func (nopObserver) SnapshotSaved(time.Duration)        {}
func (nopObserver) GlobalClicks(int64)                 {}
func (nopObserver) ActivityPosted(domain.ActivityType) {}

// Option customises a Service.
type Option func(*Service)

// WithLocker adds cross-process mutual exclusion for per-player saves.
func WithLocker(l kvstore.Locker) Option {
	return func(s *Service) { s.locker = l }
}

// WithObserver reports measurements to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithBroadcaster publishes each posted activity to b.
func WithBroadcaster(b Broadcaster) Option {
	return func(s *Service) { s.broadcaster = b }
}

// Service reconciles client snapshots with the shared store.
type Service struct {
	store       kvstore.Store
	engine      *progression.Engine
	clock       clock.Clock
	cfg         Config
	keys        keyspace
	locks       *concurrency.LockManager
	cache       *leaderboardCache
	locker      kvstore.Locker
	observer    Observer
	broadcaster Broadcaster
}

// NewService builds a Service over store.
func NewService(store kvstore.Store, engine *progression.Engine, clk clock.Clock, cfg Config, opts ...Option) *Service {
	cfg = cfg.withDefaults()
	s := &Service{
		store:    store,
		engine:   engine,
		clock:    clk,
		cfg:      cfg,
		keys:     keyspace{ns: cfg.Namespace},
		locks:    concurrency.NewLockManager(),
		cache:    newLeaderboardCache(DefaultCacheSize, cfg.CacheTTL),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// LoadSnapshot returns the caller's stored snapshot, or a starter snapshot
// named after the identity hint, together with the current leaderboard.
// A free, valid name on the snapshot is reserved for the caller.
func (s *Service) LoadSnapshot(ctx context.Context, id domain.Identity) (*domain.LoadResult, error) {
	log := logger.FromContext(ctx)

	snap, found, err := s.readSnapshot(ctx, id.PlayerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadSnapshot, id.PlayerID, err)
	}
	if !found {
		snap = s.engine.NewSnapshot("")
		log.Info(LogMsgSnapshotCreated, logger.AttrKeyPlayerID, id.PlayerID)
	}

	candidate := snap.PlayerName
	if candidate == "" {
		candidate = id.NameHint
	}
	snap.PlayerName = ""
	if name, verr := ValidateName(candidate); verr == nil {
		free, err := s.nameAvailable(ctx, id.PlayerID, name)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgLoadSnapshot, id.PlayerID, err)
		}
		if free {
			canonical, err := s.claimName(ctx, id.PlayerID, name)
			if err != nil && !errors.Is(err, domain.ErrNameTaken) {
				return nil, fmt.Errorf(ErrMsgLoadSnapshot, id.PlayerID, err)
			}
			snap.PlayerName = canonical
			log.Debug(LogMsgNameAutoRegistered, logger.AttrKeyPlayerID, id.PlayerID, "name", canonical)
		}
	}
	if snap.PlayerName == "" && candidate != "" {
		log.Info(LogMsgNameUnavailable, logger.AttrKeyPlayerID, id.PlayerID, "name", candidate)
	}

	board, err := s.GetLeaderboard(ctx, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	standing, err := s.standing(ctx, snap.PlayerName)
	if err != nil {
		return nil, err
	}
	return &domain.LoadResult{
		PlayerID:       id.PlayerID,
		Snapshot:       snap,
		Leaderboard:    board,
		PlayerStanding: standing,
	}, nil
}

// SaveSnapshot persists snap for the caller and updates the rankings and
// global click total. Saves for one player never interleave.
func (s *Service) SaveSnapshot(ctx context.Context, id domain.Identity, snap domain.PlayerSnapshot) (*domain.SaveResult, error) {
	if err := s.engine.Validate(snap); err != nil {
		return nil, err
	}
	snap = s.engine.Normalize(snap)

	start := time.Now()
	var result *domain.SaveResult
	err := s.withPlayerLock(ctx, id.PlayerID, func(ctx context.Context) error {
		var err error
		result, err = s.save(ctx, id, snap)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.observer.SnapshotSaved(time.Since(start))
	return result, nil
}

func (s *Service) save(ctx context.Context, id domain.Identity, snap domain.PlayerSnapshot) (*domain.SaveResult, error) {
	log := logger.FromContext(ctx)

	if snap.PlayerName != "" {
		name, err := ValidateName(snap.PlayerName)
		if err != nil {
			return nil, err
		}
		if snap.PlayerName, err = s.claimName(ctx, id.PlayerID, name); err != nil {
			return nil, err
		}
	}

	blob, err := EncodeSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, s.keys.snapshot(id.PlayerID), blob); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveSnapshot, id.PlayerID, err)
	}

	if snap.PlayerName != "" {
		if err := s.updateRanking(ctx, id.PlayerID, snap); err != nil {
			return nil, err
		}
	}
	delta, err := s.applyClickDelta(ctx, id.PlayerID, snap.TotalClicks)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	log.Debug(LogMsgSnapshotSaved, logger.AttrKeyPlayerID, id.PlayerID, "name", snap.PlayerName, "clickDelta", delta)

	board, err := s.GetLeaderboard(ctx, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	standing, err := s.standing(ctx, snap.PlayerName)
	if err != nil {
		return nil, err
	}
	return &domain.SaveResult{Leaderboard: board, PlayerStanding: standing}, nil
}

// updateRanking writes floor(money) and floor(depth) under the player's
// name, moving the entry when the player now plays under another name.
func (s *Service) updateRanking(ctx context.Context, playerID string, snap domain.PlayerSnapshot) error {
	prev, err := s.store.HGet(ctx, s.keys.rankedName(), playerID)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
	case err != nil:
		return fmt.Errorf(ErrMsgUpdateRanking, err)
	case prev != snap.PlayerName:
		for _, key := range []string{s.keys.money(), s.keys.depth()} {
			if err := s.store.ZRem(ctx, key, prev); err != nil {
				return fmt.Errorf(ErrMsgUpdateRanking, err)
			}
		}
		logger.FromContext(ctx).Info(LogMsgRankedNameChanged, logger.AttrKeyPlayerID, playerID, "from", prev, "to", snap.PlayerName)
	}

	if err := s.store.ZAdd(ctx, s.keys.money(), snap.PlayerName, math.Floor(snap.Money)); err != nil {
		return fmt.Errorf(ErrMsgUpdateRanking, err)
	}
	if err := s.store.ZAdd(ctx, s.keys.depth(), snap.PlayerName, math.Floor(snap.Depth)); err != nil {
		return fmt.Errorf(ErrMsgUpdateRanking, err)
	}
	if err := s.store.HSet(ctx, s.keys.rankedName(), playerID, snap.PlayerName); err != nil {
		return fmt.Errorf(ErrMsgUpdateRanking, err)
	}
	return nil
}

// applyClickDelta adds totalClicks minus the last persisted total, clamped
// at zero, to the global total. The mark and the global counter move in one
// store operation, so a failed save leaves both untouched for the retry.
func (s *Service) applyClickDelta(ctx context.Context, playerID string, totalClicks int64) (int64, error) {
	markKey := s.keys.clicks(playerID)
	prev, err := s.store.GetCounter(ctx, markKey)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgClickDelta, err)
	}
	delta := max(totalClicks-prev, 0)

	deltas := make(map[string]int64, 2)
	if totalClicks != prev {
		deltas[markKey] = totalClicks - prev
	}
	if delta > 0 {
		deltas[s.keys.globalClicks()] = delta
	}
	if len(deltas) == 0 {
		return 0, nil
	}
	if _, err := s.store.IncrByMany(ctx, deltas); err != nil {
		return 0, fmt.Errorf(ErrMsgClickDelta, err)
	}
	if delta > 0 {
		s.observer.GlobalClicks(delta)
	}
	return delta, nil
}

// ResetSnapshot deletes the caller's snapshot. The name registry, rankings
// and last persisted click total are kept.
func (s *Service) ResetSnapshot(ctx context.Context, id domain.Identity) error {
	return s.withPlayerLock(ctx, id.PlayerID, func(ctx context.Context) error {
		if err := s.store.Delete(ctx, s.keys.snapshot(id.PlayerID)); err != nil {
			return fmt.Errorf(ErrMsgResetSnapshot, id.PlayerID, err)
		}
		logger.FromContext(ctx).Info(LogMsgSnapshotReset, logger.AttrKeyPlayerID, id.PlayerID)
		return nil
	})
}

// IncrementGlobalClicks adds delta to the global counter. Negative deltas
// count as zero.
func (s *Service) IncrementGlobalClicks(ctx context.Context, delta int64) (int64, error) {
	if delta <= 0 {
		total, err := s.store.GetCounter(ctx, s.keys.globalClicks())
		if err != nil {
			return 0, fmt.Errorf(ErrMsgIncrementClicks, err)
		}
		return total, nil
	}
	total, err := s.store.IncrBy(ctx, s.keys.globalClicks(), delta)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgIncrementClicks, err)
	}
	s.observer.GlobalClicks(delta)
	return total, nil
}

// GetGlobalStats reports deployment-wide totals.
func (s *Service) GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	players, err := s.store.ZCard(ctx, s.keys.money())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadStats, err)
	}
	names, err := s.store.HLen(ctx, s.keys.nameIndex())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadStats, err)
	}
	clicks, err := s.store.GetCounter(ctx, s.keys.globalClicks())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadStats, err)
	}
	return &domain.GlobalStats{TotalPlayers: players, RegisteredNames: names, GlobalClicks: clicks}, nil
}

func (s *Service) readSnapshot(ctx context.Context, playerID string) (domain.PlayerSnapshot, bool, error) {
	blob, err := s.store.Get(ctx, s.keys.snapshot(playerID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.PlayerSnapshot{}, false, nil
	}
	if err != nil {
		return domain.PlayerSnapshot{}, false, err
	}
	snap, err := DecodeSnapshot(blob)
	if err != nil {
		// An unreadable blob starts over, and the next save replaces it.
		logger.FromContext(ctx).Warn(LogMsgSnapshotUnreadable, logger.AttrKeyPlayerID, playerID, "error", err)
		return domain.PlayerSnapshot{}, false, nil
	}
	return s.engine.Normalize(snap), true, nil
}

func (s *Service) withPlayerLock(ctx context.Context, playerID string, fn func(ctx context.Context) error) error {
	key := s.keys.lock(playerID)
	unlock := s.locks.Lock(key)
	defer unlock()
	if s.locker != nil {
		return s.locker.WithLock(ctx, key, fn)
	}
	return fn(ctx)
}

func formatCount(v int64) string { return strconv.FormatInt(v, 10) }
