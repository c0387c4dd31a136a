// Package scheduler enqueues recurring maintenance jobs onto a worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/TheDigger_Go/internal/worker"
)

// Job names used for logging and failure metrics
const (
	JobNameTrimActivities  = "trim_activities"
	JobNameWarmLeaderboard = "warm_leaderboard"
)

// Maintainer is the slice of the persistence service maintenance needs.
type Maintainer interface {
	TrimActivities(ctx context.Context) error
	WarmLeaderboard(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. A tick that finds
// the pool queue full is skipped.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// ScheduleMaintenance registers the feed trim and leaderboard warm jobs.
func (s *Scheduler) ScheduleMaintenance(m Maintainer, trimEvery, warmEvery time.Duration) {
	s.Schedule(trimEvery, worker.JobFunc{JobName: JobNameTrimActivities, Fn: m.TrimActivities})
	s.Schedule(warmEvery, worker.JobFunc{JobName: JobNameWarmLeaderboard, Fn: m.WarmLeaderboard})
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}
