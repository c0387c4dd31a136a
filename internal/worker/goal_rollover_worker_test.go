package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/metrics"
)

type MockGoalRoller struct {
	mock.Mock
}

func (m *MockGoalRoller) RolloverGoals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestTimeUntilMidnightUTC(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"just before midnight", time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC), time.Minute},
		{"exactly midnight waits a full day", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{"noon", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), 12 * time.Hour},
		{"other zone is normalised", time.Date(2024, 5, 1, 22, 0, 0, 0, time.FixedZone("UTC+2", 2*3600)), 4 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeUntilMidnightUTC(tt.now))
		})
	}
}

func TestGoalRolloverWorker_TriggerRecordsSuccess(t *testing.T) {
	roller := new(MockGoalRoller)
	roller.On("RolloverGoals", mock.Anything).Return(nil).Once()
	before := testutil.ToFloat64(metrics.GoalRollovers)

	w := NewGoalRolloverWorker(roller, clock.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	w.Trigger()
	require.NoError(t, w.Shutdown(context.Background()))

	roller.AssertExpectations(t)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.GoalRollovers))
}

func TestGoalRolloverWorker_TriggerRecordsFailure(t *testing.T) {
	roller := new(MockGoalRoller)
	roller.On("RolloverGoals", mock.Anything).Return(errors.New("store down")).Once()
	failures := metrics.MaintenanceFailures.WithLabelValues(JobNameGoalRollover)
	before := testutil.ToFloat64(failures)

	w := NewGoalRolloverWorker(roller, clock.NewReal())
	w.Trigger()
	require.NoError(t, w.Shutdown(context.Background()))

	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestGoalRolloverWorker_ShutdownCancelsPendingTimer(t *testing.T) {
	roller := new(MockGoalRoller)
	w := NewGoalRolloverWorker(roller, clock.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

	w.Start()
	require.NotNil(t, w.timer)
	require.NoError(t, w.Shutdown(context.Background()))
	// a second shutdown is harmless
	require.NoError(t, w.Shutdown(context.Background()))

	roller.AssertNotCalled(t, "RolloverGoals", mock.Anything)
}

func TestGoalRolloverWorker_ShutdownTimeout(t *testing.T) {
	release := make(chan struct{})
	roller := new(MockGoalRoller)
	roller.On("RolloverGoals", mock.Anything).Run(func(mock.Arguments) { <-release }).Return(nil)

	w := NewGoalRolloverWorker(roller, clock.NewReal())
	w.Trigger()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Shutdown(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, w.Shutdown(context.Background()))
}
