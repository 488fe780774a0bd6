// Package eventloop runs callbacks one at a time on a single goroutine.
package eventloop

import (
	"context"
	"errors"
	"time"
)

// ErrStopped is returned when posting to a loop that has exited.
var ErrStopped = errors.New("eventloop: stopped")

// Loop serializes callbacks onto the goroutine running Run.
type Loop struct {
	queue   chan func()
	stopped chan struct{}
}

// New creates a loop with the given queue capacity.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		queue:   make(chan func(), buffer),
		stopped: make(chan struct{}),
	}
}

// Run executes queued callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}

// Post queues f. It is safe to call from any goroutine.
func (l *Loop) Post(f func()) error {
	select {
	case <-l.stopped:
		return ErrStopped
	default:
	}
	select {
	case l.queue <- f:
		return nil
	case <-l.stopped:
		return ErrStopped
	}
}

// Call runs f on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, f func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		f()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrStopped
	}
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc runs f on the loop after d. The stop function must be called
// on the loop.
func (l *Loop) AfterFunc(d time.Duration, f func()) func() {
	cancelled := false
	t := time.AfterFunc(d, func() {
		_ = l.Post(func() {
			if !cancelled {
				f()
			}
		})
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}

// Go runs work on a new goroutine, then done on the loop.
func (l *Loop) Go(work func(), done func()) {
	go func() {
		work()
		_ = l.Post(done)
	}()
}
