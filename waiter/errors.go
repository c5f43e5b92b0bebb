// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package waiter

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoSource is returned by Create when no render source is supplied.
	ErrNoSource = errors.New("a render source is required")

	// ErrNoChecker is returned by Create when no checker is supplied.
	ErrNoChecker = errors.New("a checker is required")

	// ErrNegativeTimeout is returned by Create when a negative timeout is
	// configured.
	ErrNegativeTimeout = errors.New("the timeout cannot be negative")
)

// TimeoutError is the terminal error of a wait whose condition never passed
// within the configured timeout.  Cause holds the most recent checker error,
// if the checker ever failed, as diagnostic context.
type TimeoutError struct {
	Message string
	Cause   error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: last checker failure: %s", e.Message, e.Cause)
	}

	return e.Message
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// CheckError is the terminal error of a wait stopped by a checker failure
// under the stop-on-check-error policy.
type CheckError struct {
	Cause error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("the checker failed: %s", e.Cause)
}

func (e *CheckError) Unwrap() error {
	return e.Cause
}
