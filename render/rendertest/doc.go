// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package rendertest provides testing utilities for code that consumes the
render package's interfaces: stretchr mocks for Source, Subscription, and
Dispatcher, plus Pipeline, a fully functional in-memory Source for tests
that need real dispatch and notification behavior.
*/
package rendertest
