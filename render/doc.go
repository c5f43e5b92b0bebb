// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package render defines the surface this module consumes from a component
render pipeline: a monotonic render counter, a subscribable state-changed
notification, a one-shot fatal-failure observation, and a single serialized
dispatch queue on which all pipeline-originated work executes.

The render engine itself is an external collaborator.  Engines adapt their
internals to the Source interface; this package additionally provides Queue,
a working serialized Dispatcher, for engines and test fixtures that do not
bring their own.
*/
package render
