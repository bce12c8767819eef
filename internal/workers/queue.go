// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-live-sync/internal/logger"
)

// Job is a deferred unit of work run by a [Queue]. A job that returns an
// error is logged and the queue proceeds with the next one.
type Job func(ctx context.Context) error

// Queue runs jobs strictly one at a time in submission order.
//
// Submit never blocks, so a running job may submit follow-up jobs; they run
// after everything already queued. Jobs submitted before Start are kept and
// run once the queue starts.
type Queue struct {
	name       string
	jobTimeout time.Duration
	logger     *logger.Logger

	mu      sync.Mutex
	pending []Job
	stopped bool
	cancel  context.CancelFunc
	wake    chan struct{}
	wg      sync.WaitGroup
}

// NewQueue creates an idle queue. A positive jobTimeout bounds every job: the
// job's context gets that deadline, and a job still running when it elapses
// is reported with [ErrJobTimedOut] once it returns. The next job never starts
// earlier. Zero means jobs may run forever.
func NewQueue(name string, jobTimeout time.Duration, logger *logger.Logger) *Queue {
	return &Queue{
		name:       name,
		jobTimeout: jobTimeout,
		logger:     logger,
		wake:       make(chan struct{}, 1),
	}
}

// Submit appends job to the queue.
func (q *Queue) Submit(job Job) error {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return ErrQueueStopped
	}
	q.pending = append(q.pending, job)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Len returns the number of jobs waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Start implements [Worker]. It launches the goroutine draining the queue.
// Calling Start on a running or stopped queue is a no-op. Cancelling ctx
// stops the queue as [Queue.Stop] does.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.cancel != nil || q.stopped {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.wg.Add(1)

	go func() {
		defer q.wg.Done()
		q.loop(loopCtx)
	}()
}

// Stop implements [Worker]. The running job is allowed to finish, pending
// jobs are dropped and further submissions fail with [ErrQueueStopped].
// Stop blocks until the queue goroutine has exited.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.stopped = true
	cancel := q.cancel
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
	q.dropPending()
}

func (q *Queue) loop(ctx context.Context) {
	// nothing will drain the queue once the loop is gone
	defer func() {
		q.mu.Lock()
		q.stopped = true
		q.mu.Unlock()
		q.dropPending()
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		job, ok := q.next()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
				continue
			}
		}

		// the running job outlives Stop; only the timeout may cut it short
		if err := q.run(context.WithoutCancel(ctx), job); err != nil {
			q.logger.Err(err).
				Str("func", "Queue.loop").
				Str("queue", q.name).
				Msg("job failed")
		}
	}
}

func (q *Queue) next() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil, false
	}
	job := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return job, true
}

func (q *Queue) run(ctx context.Context, job Job) error {
	if q.jobTimeout <= 0 {
		return safeCall(ctx, job)
	}

	jobCtx, cancel := context.WithTimeout(ctx, q.jobTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- safeCall(jobCtx, job)
	}()

	select {
	case err := <-done:
		return err
	case <-jobCtx.Done():
	}

	// a job that finished right at the deadline still counts
	select {
	case err := <-done:
		return err
	default:
	}

	// the next job must not start before this one has returned
	q.logger.Warn().
		Str("func", "Queue.run").
		Str("queue", q.name).
		Dur("timeout", q.jobTimeout).
		Msg("job timed out, waiting for it to return")
	timedOut := fmt.Errorf("%w after %s", ErrJobTimedOut, q.jobTimeout)
	if err := <-done; err != nil {
		return errors.Join(timedOut, err)
	}
	return timedOut
}

func (q *Queue) dropPending() {
	q.mu.Lock()
	dropped := len(q.pending)
	q.pending = nil
	q.mu.Unlock()

	if dropped > 0 {
		q.logger.Warn().
			Str("func", "Queue.Stop").
			Str("queue", q.name).
			Int("dropped", dropped).
			Msg("queue stopped with pending jobs")
	}
}

func safeCall(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrJobPanicked, fmt.Errorf("%v", r))
		}
	}()
	return job(ctx)
}
