// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package render

// Source represents a live render pipeline as seen by waiting code.
//
// Implementations must guarantee that listeners registered via Subscribe are
// invoked on the dispatch queue returned by Dispatcher, and that RenderCount
// never decreases.
type Source interface {
	// RenderCount returns a snapshot of the number of renders performed so
	// far.  The counter is monotonically increasing and may advance between
	// any two reads.
	RenderCount() uint64

	// Subscribe registers a listener for state-changed notifications.  The
	// listener is invoked once per render, on the serialized dispatch queue.
	// The returned Subscription must be released when no longer needed.
	Subscribe(listener func()) Subscription

	// Dispatcher returns the pipeline's serialized dispatch queue.
	Dispatcher() Dispatcher

	// Failed returns a channel that is closed if and when the pipeline
	// encounters an unrecoverable error.  It is closed at most once and
	// composes with select, similar to context.Context.Done.
	Failed() <-chan struct{}

	// Err returns the pipeline's fatal error.  It returns a non-nil error
	// once Failed is closed and nil before that.
	Err() error
}

// Subscription is a registration token produced by Source.Subscribe.
type Subscription interface {
	// Unsubscribe releases the registration.  It is idempotent and safe to
	// call from any goroutine, including from inside the listener itself.
	Unsubscribe()
}

// Dispatcher is a single serialized queue of work.  Work items submitted to
// the same Dispatcher never execute concurrently with each other, and items
// submitted from the same goroutine execute in submission order.
type Dispatcher interface {
	// Dispatch enqueues work for execution on the queue.  It returns false,
	// dropping the work, when the queue has been stopped.  A true return
	// guarantees the work eventually executes, though not that it has
	// executed yet.
	Dispatch(work func()) bool
}
