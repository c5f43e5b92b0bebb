// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package waiter blocks a caller until a condition over asynchronously
changing render state turns true, a timeout elapses, or the render pipeline
fails, whichever comes first.

A Coordinator composes four racing event sources: an initial synchronous
check, re-checks triggered by render notifications, a timeout timer, and
the pipeline's one-shot fatal-failure observation.  The outcome is published
exactly once through a signal.Signal, and teardown is explicit and
idempotent via Dispose.

Typical usage:

	c, s, err := waiter.Create(source,
		func() (markup string, passed bool, err error) {
			markup = component.Markup()
			return markup, strings.Contains(markup, "loaded"), nil
		},
		waiter.WithTimeout(5*time.Second),
	)
	if err != nil {
		return err
	}
	defer c.Dispose()

	markup, err := s.Wait()

Higher-level helpers that supply specific conditions, such as waiting for an
element or for a component state, are expected to be built on top of this
package by the surrounding framework.
*/
package waiter
