// Package lifecycle coordinates startup, readiness, and shutdown of the
// long-lived subsystems in a process.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrShutdownTimeout is returned when shutdown hooks outlive the timeout.
var ErrShutdownTimeout = errors.New("shutdown timeout")

// Coordinator manages startup and shutdown hooks for the application lifecycle.
//
// Startup hooks run concurrently as soon as they are registered. The
// coordinator becomes ready once WaitForStartup observes all of them
// finished; readiness is one-way.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      chan struct{}
	readyOnce  sync.Once
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		ready:  make(chan struct{}),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// OnReady runs fn in the background once startup completes. fn receives the
// coordinator context and must return when it is cancelled; Shutdown waits
// for it. If shutdown begins before readiness, fn never runs.
func (c *Coordinator) OnReady(fn func(ctx context.Context)) {
	c.shutdownWg.Go(func() {
		select {
		case <-c.ready:
			fn(c.ctx)
		case <-c.ctx.Done():
		}
	})
}

// Started returns a channel closed once all startup hooks have completed.
func (c *Coordinator) Started() <-chan struct{} {
	return c.ready
}

// Ready returns true after all startup hooks have completed.
func (c *Coordinator) Ready() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// WaitForStartup blocks until all startup hooks have completed and marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.readyOnce.Do(func() { close(c.ready) })
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
	}
}
