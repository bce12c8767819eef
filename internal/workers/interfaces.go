// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that starts and stops
// several workers in a unified way, and the serialized job [Queue] that every
// store access and push send goes through.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker in the background and returns immediately; the
// worker runs until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited and is safe to call on a worker that never started.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    // start background processing
//	}
//
//	func (w *MyWorker) Stop() {}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
