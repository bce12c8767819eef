package service

import (
	"context"
	"sync"
)

// Report summarizes one operation once its completion resolves.
type Report struct {
	CycleID string `json:"cycle_id,omitempty"`
	// Changed is false when the cycle found nothing new to announce.
	Changed   bool `json:"changed"`
	Envelopes int  `json:"envelopes"`
	Delivered int  `json:"delivered"`
	Failed    int  `json:"failed"`
	// Skipped counts envelopes not sent because no transport is configured.
	Skipped int `json:"skipped"`
}

// Completion is resolved exactly once with the outcome of an operation.
type Completion struct {
	done chan struct{}
	once sync.Once

	report Report
	err    error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// ResolvedCompletion returns a completion that has already resolved.
func ResolvedCompletion(report Report, err error) *Completion {
	c := newCompletion()
	c.resolve(report, err)
	return c
}

func (c *Completion) resolve(report Report, err error) {
	c.once.Do(func() {
		c.report = report
		c.err = err
		close(c.done)
	})
}

// Done is closed once the completion resolves.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the completion resolves or ctx is done.
func (c *Completion) Wait(ctx context.Context) (Report, error) {
	select {
	case <-c.done:
		return c.report, c.err
	case <-ctx.Done():
		return Report{}, ctx.Err()
	}
}
