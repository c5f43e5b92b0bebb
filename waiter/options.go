// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package waiter

import (
	"time"

	"github.com/go-kit/kit/log"

	"github.com/rendertk/render-common/clock"
	"github.com/rendertk/render-common/logging"
)

// DefaultTimeout is the wait timeout used when none is configured.
const DefaultTimeout = time.Second

// config holds the configurable portion of a Coordinator.  It is not
// generic, so a single set of options serves coordinators of every value
// type.
type config struct {
	timeout          time.Duration
	timeoutMessage   string
	stopOnCheckError bool
	clock            clock.Interface
	logger           log.Logger
}

// Option is a configuration option for a Coordinator.
type Option func(*config)

// WithTimeout sets the wait timeout.  Create rejects negative values with
// ErrNegativeTimeout.  A zero timeout is legal and times out on the first
// pass through the dispatch queue.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTimeoutMessage sets the message of the TimeoutError produced when the
// wait times out, replacing the default message.
func WithTimeoutMessage(message string) Option {
	return func(c *config) {
		c.timeoutMessage = message
	}
}

// WithStopOnCheckError makes a checker error terminal: the wait fails with a
// CheckError instead of retrying on the next render notification.
func WithStopOnCheckError() Option {
	return func(c *config) {
		c.stopOnCheckError = true
	}
}

// WithClock sets the clock used to arm the timeout, primarily for tests.
// Passing nil selects the system clock.
func WithClock(cl clock.Interface) Option {
	return func(c *config) {
		if cl != nil {
			c.clock = cl
		} else {
			c.clock = clock.System()
		}
	}
}

// WithLogger sets the logger for best-effort diagnostics.  Passing nil
// selects the default nop logger.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		} else {
			c.logger = logging.DefaultLogger()
		}
	}
}
