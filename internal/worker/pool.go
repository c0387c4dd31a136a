package worker

import (
	"context"
	"sync"

	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/metrics"
)

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function into a named Job.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (j JobFunc) Name() string                      { return j.JobName }
func (j JobFunc) Process(ctx context.Context) error { return j.Fn(ctx) }

// Pool runs jobs on a fixed set of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(p.ctx, JobTimeout)
	defer cancel()
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())

	if err := job.Process(ctx); err != nil {
		metrics.MaintenanceFailures.WithLabelValues(job.Name()).Inc()
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", job.Name(), "error", err)
	}
}

// Enqueue adds a job without blocking. It reports false when the queue is
// full or the pool is stopped; the job is dropped in that case.
func (p *Pool) Enqueue(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(p.ctx).Warn(LogMsgWorkerJobDropped, "job", job.Name())
		return false
	}
}

// Stop cancels running jobs and waits for the workers to exit
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}
