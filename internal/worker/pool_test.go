package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/metrics"
	"github.com/osse101/TheDigger_Go/internal/testing/leaktest"
)

func countingJob(name string, n *int32, err error) JobFunc {
	return JobFunc{JobName: name, Fn: func(ctx context.Context) error {
		atomic.AddInt32(n, 1)
		return err
	}}
}

func TestPool_RunsJobs(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := countingJob("count", &executed, nil)
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(job))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 2
	}, time.Second, 5*time.Millisecond)

	pool.Stop()
	checker.Check(0)
}

func TestPool_CountsFailures(t *testing.T) {
	var executed int32
	before := testutil.ToFloat64(metrics.MaintenanceFailures.WithLabelValues("broken"))

	pool := NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	require.True(t, pool.Enqueue(countingJob("broken", &executed, errors.New("boom"))))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.MaintenanceFailures.WithLabelValues("broken")) == before+1
	}, time.Second, 5*time.Millisecond)
}

func TestPool_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1) // not started, so nothing drains the queue

	assert.True(t, pool.Enqueue(countingJob("a", &executed, nil)))
	assert.False(t, pool.Enqueue(countingJob("b", &executed, nil)))
	pool.Stop()
}

func TestPool_RejectsAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(countingJob("late", &executed, nil)))
}

func TestPool_StopCancelsRunningJob(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	pool := NewPool(1, 1)
	pool.Start()
	pool.Enqueue(JobFunc{JobName: "slow", Fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}})

	<-started
	pool.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("job context was not cancelled by Stop")
	}
}
