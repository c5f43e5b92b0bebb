// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package waiter

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/rendertk/render-common/clock"
	"github.com/rendertk/render-common/logging"
	"github.com/rendertk/render-common/render"
	"github.com/rendertk/render-common/signal"
)

// Checker is a caller-supplied condition evaluated against the current
// render state.  It reports whether the condition passed and, when it did,
// the value the wait resolves with.  A Checker must be idempotent and free
// of side effects on the coordinator; it may be invoked zero or more times
// over the wait's lifetime.  A panic inside a Checker is recovered and
// treated as a returned error.
type Checker[T any] func() (value T, passed bool, err error)

// Coordinator arbitrates the race between a condition turning true, a
// timeout elapsing, a fatal pipeline failure, and external disposal.  It is
// a per-wait object: create one per condition and discard it once its
// signal settles.
//
// Every checker invocation, the timeout continuation, and the failure
// continuation all execute on the source's serialized dispatch queue, so
// none of them ever runs concurrently with another.  Only the signal is
// touched from more than one goroutine, and it settles first-writer-wins.
//
// Forgetting to call Dispose on an unsettled wait leaks only the render
// subscription until the timeout fires; it cannot leak the outcome.
type Coordinator[T any] struct {
	config

	source  render.Source
	checker Checker[T]
	signal  *signal.Signal[T]
	started time.Time

	subscription render.Subscription
	disposed     atomic.Bool
	disposeOnce  sync.Once

	// written only on the dispatch queue, read by the timeout continuation
	// which also runs there
	lastCheckErr error
}

// Create starts a wait for the checker's condition against the given source.
// It returns the coordinator, for disposal, and the settle-once signal the
// caller blocks on for the outcome.
//
// Create runs the checker once synchronously before subscribing to render
// notifications, so a condition that is already true resolves immediately
// without a subscription ever being created.  The bootstrap checks are
// executed as serialized dispatch work; Create must therefore not be called
// from work already running on the source's dispatch queue.
func Create[T any](source render.Source, checker Checker[T], options ...Option) (*Coordinator[T], *signal.Signal[T], error) {
	if source == nil {
		return nil, nil, ErrNoSource
	}

	if checker == nil {
		return nil, nil, ErrNoChecker
	}

	cfg := config{
		timeout: DefaultTimeout,
		clock:   clock.System(),
		logger:  logging.DefaultLogger(),
	}

	for _, o := range options {
		o(&cfg)
	}

	if cfg.timeout < 0 {
		return nil, nil, ErrNegativeTimeout
	}

	c := &Coordinator[T]{
		config:  cfg,
		source:  source,
		checker: checker,
		signal:  signal.New[T](),
		started: cfg.clock.Now(),
	}

	// The ordering below is load-bearing.  The counter is snapshotted, the
	// condition checked once, and only then the subscription registered.  If
	// the counter advanced in the meantime, a render happened while no
	// subscription existed and its notification was lost, so the condition
	// is checked once more.  Skipping that recheck can hang the wait
	// indefinitely.
	//
	// Subscribing and storing the handle happen on the queue so that the
	// handle is never touched outside it: a notification arriving right
	// after registration runs strictly after this block.
	c0 := source.RenderCount()
	c.runSerialized(c.check)
	if c.signal.Settled() {
		return c, c.signal, nil
	}

	c.runSerialized(func() {
		if c.signal.Settled() {
			return
		}

		c.subscription = source.Subscribe(c.check)
		if source.RenderCount() > c0 {
			c.check()
		}
	})

	if !c.signal.Settled() {
		c.armTimeout()
		c.watchPipeline()
	}

	return c, c.signal, nil
}

// Signal returns the settle-once outcome carrier of this wait.  It is the
// same instance returned by Create.
func (c *Coordinator[T]) Signal() *signal.Signal[T] {
	return c.signal
}

// Dispose tears the wait down: it cancels the signal if nothing settled it
// yet, releases the render subscription, and prevents any further checker
// invocation.  Dispose is idempotent, never panics, and is safe to call
// from any goroutine, including from work on the dispatch queue.
func (c *Coordinator[T]) Dispose() {
	c.disposeOnce.Do(func() {
		c.disposed.Store(true)
		c.signal.Cancel()
		if c.subscription != nil {
			c.subscription.Unsubscribe()
		}
	})
}

// check is the check-and-maybe-complete routine.  It runs on the dispatch
// queue for every render notification and for the two bootstrap calls in
// Create.
func (c *Coordinator[T]) check() {
	if c.disposed.Load() || c.signal.Settled() {
		return
	}

	value, passed, err := c.invokeChecker()
	switch {
	case err != nil:
		c.lastCheckErr = err
		logging.Error(c.logger).Log(logging.MessageKey(), "checker failed", logging.ErrorKey(), err)
		if c.stopOnCheckError {
			c.signal.Fail(&CheckError{Cause: err})
			c.Dispose()
		}

	case passed:
		c.signal.Complete(value)
		c.Dispose()
	}
}

func (c *Coordinator[T]) invokeChecker() (value T, passed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value, passed = zero, false
			err = errors.Errorf("checker panicked: %v", r)
		}
	}()

	return c.checker()
}

// runSerialized executes work on the dispatch queue and waits for it to
// finish.  When the queue has already been stopped nothing can race with
// the caller anymore, so the work runs inline.
func (c *Coordinator[T]) runSerialized(work func()) {
	done := make(chan struct{})
	accepted := c.source.Dispatcher().Dispatch(func() {
		defer close(done)
		work()
	})

	if !accepted {
		work()
		return
	}

	<-done
}

// armTimeout starts the timeout timer.  The expiry continuation is
// dispatched onto the serialized queue so it competes with render checks by
// queueing order only.  The feeding goroutine exits as soon as the signal
// settles, whichever way.
func (c *Coordinator[T]) armTimeout() {
	timer := c.clock.NewTimer(c.timeout)
	go func() {
		defer timer.Stop()

		select {
		case <-timer.C():
			if !c.source.Dispatcher().Dispatch(c.onTimeout) {
				c.onTimeout()
			}

		case <-c.signal.Done():
		}
	}()
}

func (c *Coordinator[T]) onTimeout() {
	if c.disposed.Load() || c.signal.Settled() {
		return
	}

	message := c.timeoutMessage
	if message == "" {
		message = fmt.Sprintf("the condition did not pass within %s", c.timeout)
	}

	logging.Warn(c.logger).Log(
		logging.MessageKey(), "wait timed out",
		"timeout", c.timeout,
		"elapsed", c.clock.Now().Sub(c.started),
	)
	c.signal.Fail(&TimeoutError{Message: message, Cause: c.lastCheckErr})
	c.Dispose()
}

// watchPipeline chains the one-shot pipeline failure observation onto the
// dispatch queue.  A pipeline failure is always terminal: it means the
// rendered state itself is no longer trustworthy, so it wins over any
// checker outcome still queued behind it.
func (c *Coordinator[T]) watchPipeline() {
	go func() {
		select {
		case <-c.source.Failed():
			if !c.source.Dispatcher().Dispatch(c.onPipelineFailure) {
				c.onPipelineFailure()
			}

		case <-c.signal.Done():
		}
	}()
}

func (c *Coordinator[T]) onPipelineFailure() {
	if c.signal.Settled() {
		return
	}

	err := c.source.Err()
	logging.Error(c.logger).Log(logging.MessageKey(), "render pipeline failed", logging.ErrorKey(), err)
	c.signal.Fail(err)
	c.Dispose()
}
