package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/TheDigger_Go/internal/achievement"
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/progression"
)

// Syncer pushes local progress to the server.
type Syncer interface {
	Save(ctx context.Context, s domain.PlayerSnapshot) (*domain.SaveResult, error)
	Reset(ctx context.Context) error
	ContributeGoals(ctx context.Context, c domain.GoalContribution) error
	PostActivity(ctx context.Context, activityType domain.ActivityType, details string) error
}

// Events are optional callbacks fired outside the session lock.
type Events struct {
	OnAchievement func(achievement.Achievement)
	OnBiome       func(catalog.Biome)
	OnSaved       func(*domain.SaveResult)
}

// Config tunes the session loop.
type Config struct {
	TickInterval     time.Duration
	AutosaveInterval time.Duration
}

// ClickResult describes one mining action.
type ClickResult struct {
	Ore      string
	Earned   float64
	NextOre  string
	Unlocked []achievement.Achievement
}

type pendingActivity struct {
	activityType domain.ActivityType
	details      string
}

// Session owns one player's snapshot and serializes every mutation.
type Session struct {
	mu         sync.Mutex
	engine     *progression.Engine
	clock      clock.Clock
	rng        catalog.RandomSource
	syncer     Syncer
	events     Events
	cfg        Config
	milestones *MilestoneTracker

	snapshot   domain.PlayerSnapshot
	currentOre string
	lastTick   time.Time

	contribution domain.GoalContribution
	depthCarry   float64
	activities   []pendingActivity
	fired        []func()

	// syncMu orders server saves and resets, so a save of pre-reset state
	// never lands after the server-side delete.
	syncMu sync.Mutex
}

// New starts a session from a loaded snapshot. syncer may be nil for an
// offline session.
func New(engine *progression.Engine, snapshot domain.PlayerSnapshot, clk clock.Clock, rng catalog.RandomSource, syncer Syncer, events Events, cfg Config) *Session {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = DefaultAutosaveInterval
	}
	s := &Session{
		engine:     engine,
		clock:      clk,
		rng:        rng,
		syncer:     syncer,
		events:     events,
		cfg:        cfg,
		milestones: NewMilestoneTracker(),
		snapshot:   engine.Normalize(snapshot),
		lastTick:   clk.Now(),
	}
	s.currentOre = s.rollOre()
	// Achievements earned before this session are not announced again.
	for _, id := range s.snapshot.UnlockedAchievements.Values() {
		s.milestones.ShouldTrack(milestoneAchievement + id)
	}
	for _, id := range s.snapshot.DiscoveredBiomes.Values() {
		s.milestones.ShouldTrack(milestoneBiome + strconv.Itoa(id))
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() domain.PlayerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// CurrentOre is the ore the next click will mine.
func (s *Session) CurrentOre() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentOre
}

// Rate is the current production in depth per second.
func (s *Session) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ProductionRate(s.snapshot)
}

// Click mines the current ore and rolls the next one from the biome the
// player ends up in.
func (s *Session) Click() (ClickResult, error) {
	s.mu.Lock()
	ore := s.currentOre
	next, err := s.engine.ApplyClick(s.snapshot, ore)
	if err != nil {
		s.mu.Unlock()
		return ClickResult{}, err
	}
	earned := next.Money - s.snapshot.Money
	s.contribution.Ores++
	s.contribution.Money += int64(earned)
	s.contribution.Depth++

	unlocked := s.commit(next)
	s.currentOre = s.rollOre()
	result := ClickResult{Ore: ore, Earned: earned, NextOre: s.currentOre, Unlocked: unlocked}
	fire := s.takeFired()
	s.mu.Unlock()

	runAll(fire)
	return result, nil
}

// Tick applies production for the time elapsed since the previous tick.
func (s *Session) Tick() {
	s.mu.Lock()
	now := s.clock.Now()
	elapsed := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	next := s.engine.ApplyAutoProduction(s.snapshot, elapsed)
	if gained := next.Depth - s.snapshot.Depth; gained > 0 {
		s.depthCarry += gained
		whole := math.Floor(s.depthCarry)
		s.contribution.Depth += int64(whole)
		s.depthCarry -= whole
		s.commit(next)
	}
	fire := s.takeFired()
	s.mu.Unlock()

	runAll(fire)
}

// BuyTool purchases a tool. Rejections leave the session untouched.
func (s *Session) BuyTool(toolID string) error {
	s.mu.Lock()
	next, err := s.engine.PurchaseTool(s.snapshot, toolID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.commit(next)
	if tool, ok := s.engine.Catalog().Tool(toolID); ok && s.milestones.ShouldTrack(milestoneTool+toolID) {
		s.queueActivity(domain.ActivityTool, tool.Name)
	}
	fire := s.takeFired()
	s.mu.Unlock()

	runAll(fire)
	return nil
}

// BuyProducer purchases quantity auto-diggers.
func (s *Session) BuyProducer(producerID string, quantity int) error {
	s.mu.Lock()
	next, err := s.engine.PurchaseProducer(s.snapshot, producerID, quantity)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.commit(next)
	if p, ok := s.engine.Catalog().Producer(producerID); ok && s.milestones.ShouldTrack(milestoneProducer+producerID) {
		s.queueActivity(domain.ActivityProducer, p.Name)
	}
	fire := s.takeFired()
	s.mu.Unlock()

	runAll(fire)
	return nil
}

// Reset clears progress on the server, then locally. The name is kept.
func (s *Session) Reset(ctx context.Context) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if s.syncer != nil {
		if err := s.syncer.Reset(ctx); err != nil {
			return fmt.Errorf(ErrMsgResetFailed, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = s.engine.ResetProgress(s.snapshot)
	s.currentOre = s.rollOre()
	s.lastTick = s.clock.Now()
	s.depthCarry = 0
	return nil
}

// Save pushes the current snapshot. On failure local state is kept and the
// next save carries it again.
func (s *Session) Save(ctx context.Context) (*domain.SaveResult, error) {
	if s.syncer == nil {
		return nil, nil
	}
	s.syncMu.Lock()
	result, err := s.syncer.Save(ctx, s.Snapshot())
	s.syncMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSaveFailed, err)
	}

	if s.events.OnSaved != nil {
		s.events.OnSaved(result)
	}
	return result, nil
}

// Flush sends accumulated goal contributions and queued activities. A
// failed batch is dropped rather than resent: the request may have committed
// before it failed, and a resend would count it twice.
func (s *Session) Flush(ctx context.Context) error {
	if s.syncer == nil {
		return nil
	}

	s.mu.Lock()
	contribution := s.contribution
	s.contribution = domain.GoalContribution{}
	activities := s.activities
	s.activities = nil
	s.mu.Unlock()

	var errs []error
	if !contribution.IsZero() {
		if err := s.syncer.ContributeGoals(ctx, contribution); err != nil {
			errs = append(errs, fmt.Errorf(ErrMsgContributeFailed, err))
		}
	}
	for _, a := range activities {
		if err := s.syncer.PostActivity(ctx, a.activityType, a.details); err != nil {
			errs = append(errs, fmt.Errorf(ErrMsgActivityFailed, err))
		}
	}
	return errors.Join(errs...)
}

// Run ticks production and autosaves until ctx is cancelled, then makes one
// last save.
func (s *Session) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSessionStarted, "tick", s.cfg.TickInterval, "autosave", s.cfg.AutosaveInterval)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	autosave := time.NewTicker(s.cfg.AutosaveInterval)
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			s.finalSave(ctx)
			log.Info(LogMsgSessionStopped)
			return
		case <-ticker.C:
			s.Tick()
		case <-autosave.C:
			s.autosave(ctx)
		}
	}
}

func (s *Session) autosave(ctx context.Context) {
	log := logger.FromContext(ctx)
	if _, err := s.Save(ctx); err != nil {
		log.Warn(LogMsgAutosaveFailed, "error", err)
	}
	if err := s.Flush(ctx); err != nil {
		log.Warn(LogMsgFlushFailed, "error", err)
	}
}

func (s *Session) finalSave(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), FinalSaveTimeout)
	defer cancel()
	s.Tick()
	if _, err := s.Save(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFinalSaveFailed, "error", err)
	}
	_ = s.Flush(ctx)
}

// commit stores next, unlocks achievements and queues milestone activity.
// Callers hold s.mu.
func (s *Session) commit(next domain.PlayerSnapshot) []achievement.Achievement {
	prevDepth := s.snapshot.Depth
	next, unlocked := s.engine.UnlockAchievements(next)
	s.snapshot = next

	for _, a := range unlocked {
		if s.milestones.ShouldTrack(milestoneAchievement + a.ID) {
			s.queueActivity(domain.ActivityAchievement, a.Name)
		}
		if s.events.OnAchievement != nil {
			s.fired = append(s.fired, func() { s.events.OnAchievement(a) })
		}
	}

	for _, id := range next.DiscoveredBiomes.Values() {
		if !s.milestones.ShouldTrack(milestoneBiome + strconv.Itoa(id)) {
			continue
		}
		biome, _ := s.engine.Catalog().Biome(id)
		s.queueActivity(domain.ActivityBiome, biome.Name)
		if s.events.OnBiome != nil {
			s.fired = append(s.fired, func() { s.events.OnBiome(biome) })
		}
	}

	for _, m := range DepthMilestones {
		if prevDepth < m && next.Depth >= m && s.milestones.ShouldTrack(milestoneDepth+strconv.FormatFloat(m, 'f', 0, 64)) {
			s.queueActivity(domain.ActivityDepth, strconv.FormatFloat(m, 'f', 0, 64)+" ft")
		}
	}
	return unlocked
}

func (s *Session) queueActivity(t domain.ActivityType, details string) {
	s.activities = append(s.activities, pendingActivity{activityType: t, details: details})
}

func (s *Session) takeFired() []func() {
	fire := s.fired
	s.fired = nil
	return fire
}

func (s *Session) rollOre() string {
	biome := s.engine.CurrentBiome(s.snapshot)
	ore, err := s.engine.Catalog().WeightedRandomOre(s.rng, biome.Ores)
	if err != nil {
		return s.engine.Catalog().StarterOre()
	}
	return ore
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
