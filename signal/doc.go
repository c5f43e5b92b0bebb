// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package signal provides a one-shot, settle-once carrier for a result value or
a terminal error.  A Signal is the single point through which an asynchronous
outcome is published: multiple racing producers may attempt to settle it, the
first attempt wins, and every later attempt is a no-op.

Consumers may block on Wait, bound the wait with a context or a time channel,
or poll with TryResult.  The Done channel composes with select.
*/
package signal
