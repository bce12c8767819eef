package workers

import "errors"

var (
	// ErrQueueStopped is returned by [Queue.Submit] once the queue has been
	// stopped. The job is not run.
	ErrQueueStopped = errors.New("queue is stopped")

	// ErrJobTimedOut is reported when a job does not settle within the
	// queue's job timeout. The queue skips the job and moves on.
	ErrJobTimedOut = errors.New("job timed out")

	// ErrJobPanicked is reported when a job panics. The panic is recovered
	// and the queue moves on.
	ErrJobPanicked = errors.New("job panicked")
)
