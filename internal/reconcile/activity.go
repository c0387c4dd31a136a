package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// AnonymousName labels activities from players without a ranked name.
const AnonymousName = "Anonymous Miner"

// PostActivity records an entry in the community feed, trims the feed to
// its cap and broadcasts the entry.
func (s *Service) PostActivity(ctx context.Context, id domain.Identity, activityType domain.ActivityType, details string) (*domain.Activity, error) {
	if !activityType.Valid() {
		return nil, fmt.Errorf(ErrMsgInvalidActivity, domain.ErrInvalidActivity, activityType)
	}
	details = truncate(strings.TrimSpace(details), MaxActivityDetails)

	name, err := s.displayName(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPostActivity, err)
	}

	now := s.clock.Now().UTC()
	a := domain.Activity{
		ID:           uuid.NewString(),
		PlayerName:   name,
		ActivityType: activityType,
		Details:      details,
		Timestamp:    now,
	}
	member, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPostActivity, err)
	}
	if err := s.store.ZAdd(ctx, s.keys.activity(), string(member), float64(now.UnixMilli())); err != nil {
		return nil, fmt.Errorf(ErrMsgPostActivity, err)
	}
	if err := s.TrimActivities(ctx); err != nil {
		return nil, err
	}

	s.observer.ActivityPosted(activityType)
	if s.broadcaster != nil {
		s.broadcaster.PublishActivity(a)
	}
	logger.FromContext(ctx).Debug(LogMsgActivityPosted, "type", activityType, "player", name)
	return &a, nil
}

// RecentActivities returns up to limit entries, newest first.
func (s *Service) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > s.cfg.ActivityCap {
		limit = min(DefaultActivityLimit, s.cfg.ActivityCap)
	}
	rows, err := s.store.ZRange(ctx, s.keys.activity(), 0, int64(limit)-1, true)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadActivities, err)
	}

	out := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		var a domain.Activity
		if err := json.Unmarshal([]byte(row.Member), &a); err != nil {
			logger.FromContext(ctx).Warn(LogMsgStaleActivity, "error", err)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// TrimActivities drops the oldest entries beyond the feed cap.
func (s *Service) TrimActivities(ctx context.Context) error {
	if err := s.store.ZRemRangeByRank(ctx, s.keys.activity(), 0, -int64(s.cfg.ActivityCap)-1); err != nil {
		return fmt.Errorf(ErrMsgTrimActivities, err)
	}
	return nil
}

// displayName is the name the player ranks under, then the identity hint.
func (s *Service) displayName(ctx context.Context, id domain.Identity) (string, error) {
	name, err := s.store.HGet(ctx, s.keys.rankedName(), id.PlayerID)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		return "", err
	}
	if hint, err := ValidateName(id.NameHint); err == nil {
		return hint, nil
	}
	return AnonymousName, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
