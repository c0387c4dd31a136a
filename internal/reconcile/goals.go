package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// ContributeToDailyGoal adds amount to today's accumulator for dimension
// and returns the new total. Non-positive amounts add nothing.
func (s *Service) ContributeToDailyGoal(ctx context.Context, dimension domain.GoalDimension, amount int64) (int64, error) {
	if !dimension.Valid() {
		return 0, fmt.Errorf(ErrMsgUnknownDimFmt, domain.ErrInvalidDimension, dimension)
	}
	key := s.keys.goal(s.today(), dimension)

	var (
		total int64
		err   error
	)
	if amount <= 0 {
		total, err = s.store.GetCounter(ctx, key)
	} else {
		total, err = s.store.IncrBy(ctx, key, amount)
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgContributeGoal, dimension, err)
	}
	return total, nil
}

// ContributeGoals applies a session's batched contribution to each dimension.
func (s *Service) ContributeGoals(ctx context.Context, c domain.GoalContribution) error {
	amounts := map[domain.GoalDimension]int64{
		domain.GoalDepth: c.Depth,
		domain.GoalOres:  c.Ores,
		domain.GoalMoney: c.Money,
	}
	for _, dim := range domain.GoalDimensions {
		if amounts[dim] <= 0 {
			continue
		}
		if _, err := s.ContributeToDailyGoal(ctx, dim, amounts[dim]); err != nil {
			return err
		}
	}
	return nil
}

// GetDailyGoals reports today's progress on every configured goal.
func (s *Service) GetDailyGoals(ctx context.Context) ([]domain.DailyGoal, error) {
	dateKey := s.today()
	goals := make([]domain.DailyGoal, 0, len(s.cfg.Goals))
	for _, def := range s.cfg.Goals {
		current, err := s.store.GetCounter(ctx, s.keys.goal(dateKey, def.ID))
		if err != nil {
			return nil, fmt.Errorf(ErrMsgReadGoals, err)
		}
		goals = append(goals, buildGoal(def, current, dateKey))
	}
	return goals, nil
}

func buildGoal(def domain.GoalDefinition, current int64, dateKey string) domain.DailyGoal {
	pct := 100
	if def.Target > 0 && current < def.Target {
		pct = int(current * 100 / def.Target)
	}
	if pct < 0 {
		pct = 0
	}
	return domain.DailyGoal{
		ID:         def.ID,
		Name:       def.Name,
		Target:     def.Target,
		Current:    current,
		Unit:       def.Unit,
		Reward:     def.Reward,
		Percentage: pct,
		Completed:  current >= def.Target,
		DateKey:    dateKey,
	}
}

// ArchiveGoals copies the totals for dateKey into the goal history and
// deletes the day's counters.
func (s *Service) ArchiveGoals(ctx context.Context, dateKey string) error {
	for _, dim := range domain.GoalDimensions {
		key := s.keys.goal(dateKey, dim)
		total, err := s.store.GetCounter(ctx, key)
		if err != nil {
			return fmt.Errorf(ErrMsgArchiveGoals, dateKey, err)
		}
		field := fmt.Sprintf(goalHistoryFieldFmt, dateKey, dim)
		if err := s.store.HSet(ctx, s.keys.goalHistory(), field, formatCount(total)); err != nil {
			return fmt.Errorf(ErrMsgArchiveGoals, dateKey, err)
		}
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf(ErrMsgArchiveGoals, dateKey, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgGoalsArchived, "date", dateKey)
	return nil
}

// RolloverGoals archives the previous UTC day.
func (s *Service) RolloverGoals(ctx context.Context) error {
	return s.ArchiveGoals(ctx, clock.DateKey(s.clock.Now().Add(-24*time.Hour)))
}

// GoalHistory returns archived totals keyed "YYYY-MM-DD:dimension".
func (s *Service) GoalHistory(ctx context.Context) (map[string]string, error) {
	h, err := s.store.HGetAll(ctx, s.keys.goalHistory())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadGoals, err)
	}
	return h, nil
}

func (s *Service) today() string {
	return clock.DateKey(s.clock.Now())
}
