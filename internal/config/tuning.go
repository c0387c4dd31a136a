package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/reconcile"
)

// Tuning is the game balance and cadence layer, separate from process config.
type Tuning struct {
	Namespace   string                  `koanf:"namespace" validate:"required"`
	Leaderboard LeaderboardTuning       `koanf:"leaderboard"`
	Activity    ActivityTuning          `koanf:"activity"`
	Session     SessionTuning           `koanf:"session"`
	Save        SaveTuning              `koanf:"save"`
	Maintenance MaintenanceTuning       `koanf:"maintenance"`
	Goals       []domain.GoalDefinition `koanf:"goals" validate:"dive"`
}

type LeaderboardTuning struct {
	Size      int           `koanf:"size" validate:"gt=0"`
	AdminSize int           `koanf:"admin_size" validate:"gt=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gt=0"`
}

type ActivityTuning struct {
	Cap int `koanf:"cap" validate:"gt=0"`
}

// SessionTuning drives headless sessions (cmd/autodig).
type SessionTuning struct {
	Tick     time.Duration `koanf:"tick" validate:"gt=0"`
	Autosave time.Duration `koanf:"autosave" validate:"gt=0"`
}

// SaveTuning bounds how often one player may save.
type SaveTuning struct {
	RatePerSecond float64 `koanf:"rate_per_second" validate:"gt=0"`
	Burst         int     `koanf:"burst" validate:"gt=0"`
}

type MaintenanceTuning struct {
	TrimInterval time.Duration `koanf:"trim_interval" validate:"gt=0"`
	WarmInterval time.Duration `koanf:"warm_interval" validate:"gt=0"`
}

// DefaultTuning is used for every key the file and environment leave unset.
// Goals stay nil here; LoadTuning fills them in when none are configured.
func DefaultTuning() Tuning {
	return Tuning{
		Namespace: DefaultNamespace,
		Leaderboard: LeaderboardTuning{
			Size:      DefaultLeaderboardSize,
			AdminSize: DefaultAdminListSize,
			CacheTTL:  DefaultCacheTTL,
		},
		Activity: ActivityTuning{Cap: DefaultActivityCap},
		Session: SessionTuning{
			Tick:     DefaultTickInterval,
			Autosave: DefaultAutosaveInterval,
		},
		Save: SaveTuning{
			RatePerSecond: DefaultSaveRate,
			Burst:         DefaultSaveBurst,
		},
		Maintenance: MaintenanceTuning{
			TrimInterval: DefaultTrimInterval,
			WarmInterval: DefaultWarmInterval,
		},
	}
}

// LoadTuning reads path (skipped when missing) and then DIGGER_ variables
// on top. Nested keys use a double underscore:
// DIGGER_LEADERBOARD__CACHE_TTL=5s sets leaderboard.cache_ttl.
func LoadTuning(path string) (*Tuning, error) {
	k := koanf.New(TuningKeyDelim)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf(ErrMsgLoadTuningFile, path, err)
			}
		}
	}

	if err := k.Load(env.Provider(TuningKeyDelim, env.Opt{
		Prefix:        TuningEnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadTuningEnv, err)
	}

	t := DefaultTuning()
	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &t,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf(ErrMsgDecodeTuning, err)
	}

	if len(t.Goals) == 0 {
		t.Goals = append([]domain.GoalDefinition(nil), domain.DefaultGoals...)
	}

	if err := validator.New().Struct(t); err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidTuning, err)
	}
	return &t, nil
}

func envKey(k, v string) (string, any) {
	k = strings.ToLower(strings.TrimPrefix(k, TuningEnvPrefix))
	return strings.ReplaceAll(k, TuningEnvLevelSep, TuningKeyDelim), v
}

// ReconcileConfig maps the tuning onto the persistence service settings.
func (t *Tuning) ReconcileConfig() reconcile.Config {
	return reconcile.Config{
		Namespace:       t.Namespace,
		LeaderboardSize: t.Leaderboard.Size,
		AdminListSize:   t.Leaderboard.AdminSize,
		ActivityCap:     t.Activity.Cap,
		CacheTTL:        t.Leaderboard.CacheTTL,
		Goals:           t.Goals,
	}
}
