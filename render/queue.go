// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"sync"

	"github.com/go-kit/kit/log"

	"github.com/rendertk/render-common/logging"
)

// DefaultQueueDepth is the buffer size of a Queue when none is configured.
const DefaultQueueDepth = 64

// Queue is a Dispatcher backed by a single goroutine.  In addition to
// Dispatch, a Queue can be stopped, after which further work is dropped.
type Queue interface {
	Dispatcher

	// Stop shuts down the queue and waits for the worker goroutine to exit.
	// Work already accepted is executed before Stop returns, so a true
	// return from Dispatch always means the work runs.  Stop is idempotent
	// and must not be called from work running on the queue.
	Stop()
}

// QueueOption is a configuration option for a Queue.
type QueueOption func(*queue)

// WithQueueDepth sets the number of work items the queue buffers before
// Dispatch blocks.  Nonpositive values select DefaultQueueDepth.
func WithQueueDepth(depth int) QueueOption {
	return func(q *queue) {
		if depth > 0 {
			q.depth = depth
		} else {
			q.depth = DefaultQueueDepth
		}
	}
}

// WithQueueLogger sets the logger used to report recovered panics in work
// items.  Passing nil selects the default nop logger.
func WithQueueLogger(logger log.Logger) QueueOption {
	return func(q *queue) {
		if logger != nil {
			q.logger = logger
		} else {
			q.logger = logging.DefaultLogger()
		}
	}
}

// NewQueue starts a serialized dispatch queue.  The caller is responsible
// for invoking Stop when the queue is no longer needed.
func NewQueue(options ...QueueOption) Queue {
	q := &queue{
		depth:  DefaultQueueDepth,
		logger: logging.DefaultLogger(),
		halt:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	for _, o := range options {
		o(q)
	}

	q.tasks = make(chan func(), q.depth)
	go q.run()

	return q
}

// queue is the internal Queue implementation
type queue struct {
	depth  int
	logger log.Logger

	tasks  chan func()
	halt   chan struct{}
	exited chan struct{}

	// lock orders Dispatch against Stop: every send to tasks happens under
	// the read lock with stopped false, so by the time Stop flips stopped
	// under the write lock, all accepted work is in the buffer and the
	// worker drains it before exiting.
	lock    sync.RWMutex
	stopped bool
}

func (q *queue) run() {
	defer close(q.exited)

	for {
		select {
		case <-q.halt:
			q.drain()
			return

		case work := <-q.tasks:
			q.execute(work)
		}
	}
}

// drain executes work accepted before the queue stopped.  No new work can
// arrive at this point, so an empty buffer means the queue is done.
func (q *queue) drain() {
	for {
		select {
		case work := <-q.tasks:
			q.execute(work)

		default:
			return
		}
	}
}

// execute shields the worker goroutine from panicking work items.  A panic
// in one item must not prevent later items from executing.
func (q *queue) execute(work func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(q.logger).Log(logging.MessageKey(), "dispatched work panicked", "panic", r)
		}
	}()

	work()
}

func (q *queue) Dispatch(work func()) bool {
	if work == nil {
		return false
	}

	q.lock.RLock()
	defer q.lock.RUnlock()

	if q.stopped {
		return false
	}

	q.tasks <- work
	return true
}

func (q *queue) Stop() {
	q.lock.Lock()
	if !q.stopped {
		q.stopped = true
		close(q.halt)
	}
	q.lock.Unlock()

	<-q.exited
}
