package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

var (
	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("pipeline: stopped")
	// ErrQueueFull is returned by Submit when the queue has no room.
	ErrQueueFull = errors.New("pipeline: job queue is full")
)

// Orchestrator feeds queued jobs to a fixed-size worker pool.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	pool     *ants.Pool
	worker   *Worker
	log      *slog.Logger
	maxQueue int

	mu      sync.RWMutex
	started bool
	stopped bool

	cancel     context.CancelFunc
	wg         sync.WaitGroup
	inflight   sync.WaitGroup
	dispatched chan struct{}
}

// NewOrchestrator creates the pipeline. Jobs wait in a queue of maxQueue
// until one of workers goroutines is free.
func NewOrchestrator(w *Worker, workers, maxQueue int, jobTTL time.Duration, log *slog.Logger) (*Orchestrator, error) {
	if workers <= 0 {
		workers = 1
	}
	if maxQueue <= 0 {
		maxQueue = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p any) {
		log.Error("worker panic", "panic", p)
	}))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Orchestrator{
		jobs:       NewJobStore(jobTTL),
		queue:      make(chan *Job, maxQueue),
		pool:       pool,
		worker:     w,
		log:        log,
		maxQueue:   maxQueue,
		dispatched: make(chan struct{}),
	}, nil
}

// Start launches the dispatcher and the job store cleanup.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started || o.stopped {
		return
	}
	o.started = true
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	go func() {
		defer close(o.dispatched)
		for job := range o.queue {
			if o.isStopped() {
				job.AddError("pipeline shut down before the job started")
				job.SetStatus(StatusFailed, "queued")
				continue
			}
			o.inflight.Add(1)
			err := o.pool.Submit(func() {
				defer o.inflight.Done()
				o.run(workerCtx, job)
			})
			if err != nil {
				o.inflight.Done()
				o.log.Error("dispatch failed", "job_id", job.ID, "error", err)
				job.AddError(fmt.Sprintf("dispatch: %s", err))
				job.SetStatus(StatusFailed, "queued")
			}
		}
	}()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// run processes one job. A panic fails the job instead of the process.
func (o *Orchestrator) run(ctx context.Context, job *Job) {
	defer func() {
		if p := recover(); p != nil {
			o.log.Error("job panicked", "job_id", job.ID, "panic", p)
			job.AddError(fmt.Sprintf("internal error: %v", p))
			job.SetStatus(StatusFailed, "panic")
		}
	}()
	o.worker.Process(ctx, job)
}

func (o *Orchestrator) isStopped() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stopped
}

// Stop stops accepting jobs, fails the ones still queued and waits for
// running jobs to finish. When ctx expires first, running jobs are
// cancelled and ctx.Err() is returned.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return nil
	}
	o.stopped = true
	close(o.queue)
	if !o.started {
		close(o.dispatched)
	}
	o.mu.Unlock()

	// The dispatcher is the only caller of inflight.Add, so waiting for it
	// first keeps Add from racing with Wait.
	done := make(chan struct{})
	go func() {
		<-o.dispatched
		o.inflight.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if o.cancel != nil {
		o.cancel()
	}
	<-done
	o.wg.Wait()
	o.pool.Release()
	return err
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.stopped {
		return ErrStopped
	}
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.maxQueue)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Running returns the number of jobs being processed.
func (o *Orchestrator) Running() int {
	return o.pool.Running()
}

// Worker returns the worker for ad-hoc matching.
func (o *Orchestrator) Worker() *Worker {
	return o.worker
}
