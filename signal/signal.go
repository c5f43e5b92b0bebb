// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"
)

var (
	// ErrCancelled is the terminal error of a Signal that was cancelled
	// before any producer settled it.
	ErrCancelled = errors.New("the signal was cancelled before it settled")

	// ErrWaitTimeout is returned by WaitWait when the supplied time channel
	// fires before the Signal settles.  The Signal itself remains unsettled.
	ErrWaitTimeout = errors.New("the signal did not settle within the timeout")
)

const (
	unsettled int32 = iota
	settling
	settled
)

// Signal is a one-shot promise of a value of type T or a terminal error.
//
// The zero value is not usable; construct instances with New.  All methods
// are safe for concurrent use.  Settlement is first-writer-wins: exactly one
// of Complete, Fail, or Cancel ever takes effect over the Signal's lifetime.
type Signal[T any] struct {
	state atomic.Int32
	done  chan struct{}

	// written exactly once, before done is closed
	value T
	err   error
}

// New constructs an unsettled Signal.
func New[T any]() *Signal[T] {
	return &Signal[T]{
		done: make(chan struct{}),
	}
}

// settle attempts the one-way unsettled-to-settled transition.  The result
// fields are published by the channel close: any goroutine that observes the
// closed done channel also observes the stored value and error.
func (s *Signal[T]) settle(value T, err error) bool {
	if !s.state.CompareAndSwap(unsettled, settling) {
		return false
	}

	s.value = value
	s.err = err
	s.state.Store(settled)
	close(s.done)
	return true
}

// Complete settles this Signal with a successful value.  It returns false,
// changing nothing, when the Signal has already settled.
func (s *Signal[T]) Complete(value T) bool {
	return s.settle(value, nil)
}

// Fail settles this Signal with a terminal error.  A nil err is normalized
// to ErrCancelled so that a settled Signal always has either a value or a
// non-nil error.  It returns false when the Signal has already settled.
func (s *Signal[T]) Fail(err error) bool {
	if err == nil {
		err = ErrCancelled
	}

	var zero T
	return s.settle(zero, err)
}

// Cancel settles this Signal with ErrCancelled.  It returns false when the
// Signal has already settled, making it safe to invoke redundantly from
// cleanup paths.
func (s *Signal[T]) Cancel() bool {
	var zero T
	return s.settle(zero, ErrCancelled)
}

// Done returns a channel that is closed once this Signal settles.  It is
// never closed before settlement and composes with select.
func (s *Signal[T]) Done() <-chan struct{} {
	return s.done
}

// Settled tests whether an outcome has been published yet.
func (s *Signal[T]) Settled() bool {
	return s.state.Load() == settled
}

// Wait blocks until this Signal settles, then returns its outcome.
func (s *Signal[T]) Wait() (T, error) {
	<-s.done
	return s.value, s.err
}

// WaitCtx blocks until this Signal settles or the context is done.  When the
// context wins, ctx.Err() is returned and the Signal remains unsettled.
func (s *Signal[T]) WaitCtx(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.value, s.err

	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// WaitWait blocks until this Signal settles or the given time channel becomes
// signaled, in which case ErrWaitTimeout is returned.  A typical usage is
// WaitWait(time.After(time.Second)).
func (s *Signal[T]) WaitWait(t <-chan time.Time) (T, error) {
	select {
	case <-s.done:
		return s.value, s.err

	case <-t:
		var zero T
		return zero, ErrWaitTimeout
	}
}

// TryResult returns the outcome without blocking.  The boolean reports
// whether the Signal had settled; when false, the value and error are
// meaningless.
func (s *Signal[T]) TryResult() (T, error, bool) {
	select {
	case <-s.done:
		return s.value, s.err, true

	default:
		var zero T
		var zeroErr error
		return zero, zeroErr, false
	}
}
