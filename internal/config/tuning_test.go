package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadTuning_MissingFileUsesDefaults(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultNamespace, tuning.Namespace)
	assert.Equal(t, DefaultLeaderboardSize, tuning.Leaderboard.Size)
	assert.Equal(t, DefaultActivityCap, tuning.Activity.Cap)
	assert.Equal(t, DefaultTickInterval, tuning.Session.Tick)
	assert.Equal(t, domain.DefaultGoals, tuning.Goals)
}

func TestLoadTuning_FileOverridesDefaults(t *testing.T) {
	path := writeTuning(t, `
namespace: staging
leaderboard:
  size: 25
  cache_ttl: 750ms
goals:
  - id: ores
    name: Small Rush
    target: 10
    unit: ores
`)

	tuning, err := LoadTuning(path)

	require.NoError(t, err)
	assert.Equal(t, "staging", tuning.Namespace)
	assert.Equal(t, 25, tuning.Leaderboard.Size)
	assert.Equal(t, 750*time.Millisecond, tuning.Leaderboard.CacheTTL)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultAdminListSize, tuning.Leaderboard.AdminSize)
	require.Len(t, tuning.Goals, 1)
	assert.Equal(t, domain.GoalOres, tuning.Goals[0].ID)
	assert.Equal(t, int64(10), tuning.Goals[0].Target)
}

func TestLoadTuning_EnvOverridesFile(t *testing.T) {
	path := writeTuning(t, "save:\n  burst: 3\n")
	t.Setenv("DIGGER_SAVE__BURST", "9")
	t.Setenv("DIGGER_SAVE__RATE_PER_SECOND", "0.5")
	t.Setenv("DIGGER_NAMESPACE", "from-env")

	tuning, err := LoadTuning(path)

	require.NoError(t, err)
	assert.Equal(t, 9, tuning.Save.Burst)
	assert.InDelta(t, 0.5, tuning.Save.RatePerSecond, 1e-9)
	assert.Equal(t, "from-env", tuning.Namespace)
}

func TestLoadTuning_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero leaderboard", "leaderboard:\n  size: 0\n"},
		{"negative burst", "save:\n  burst: -1\n"},
		{"unknown goal", "goals:\n  - id: gems\n    name: Gems\n    target: 5\n"},
		{"zero goal target", "goals:\n  - id: depth\n    name: Deep\n    target: 0\n"},
		{"bad duration", "session:\n  tick: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeTuning(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadTuning_ShippedFile(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join("..", "..", ConfigPathTuning))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals, tuning.Goals)
	assert.Equal(t, DefaultSaveBurst, tuning.Save.Burst)
}

func TestTuning_ReconcileConfig(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Goals = domain.DefaultGoals

	cfg := tuning.ReconcileConfig()

	assert.Equal(t, tuning.Namespace, cfg.Namespace)
	assert.Equal(t, tuning.Leaderboard.Size, cfg.LeaderboardSize)
	assert.Equal(t, tuning.Leaderboard.AdminSize, cfg.AdminListSize)
	assert.Equal(t, tuning.Activity.Cap, cfg.ActivityCap)
	assert.Equal(t, tuning.Leaderboard.CacheTTL, cfg.CacheTTL)
	assert.Equal(t, tuning.Goals, cfg.Goals)
}
