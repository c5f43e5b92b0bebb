// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/rendertk/render-common/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestQueueOrdering(t *testing.T) {
	const workCount = 100

	var (
		assert = assert.New(t)
		q      = NewQueue(WithQueueDepth(workCount))

		order = make([]int, 0, workCount)
		done  = make(chan struct{})
	)

	defer q.Stop()

	for i := 0; i < workCount; i++ {
		i := i
		assert.True(q.Dispatch(func() {
			order = append(order, i)
			if i == workCount-1 {
				close(done)
			}
		}))
	}

	select {
	case <-done:
		// passing
	case <-time.After(5 * time.Second):
		assert.FailNow("dispatched work did not execute")
	}

	// order is only appended from the worker goroutine, and the final
	// item has executed, so no synchronization is needed to read it
	for i, v := range order {
		assert.Equal(i, v)
	}
}

func TestQueueStopIdempotent(t *testing.T) {
	assert := assert.New(t)
	q := NewQueue()

	assert.NotPanics(q.Stop)
	assert.NotPanics(q.Stop)
}

// TestQueueStopExecutesAccepted verifies that work accepted by Dispatch is
// executed even when Stop arrives while it is still buffered: a true return
// from Dispatch means the work runs.
func TestQueueStopExecutesAccepted(t *testing.T) {
	const workCount = 5

	var (
		assert = assert.New(t)
		q      = NewQueue(WithQueueDepth(workCount + 1))

		executed int
		block    = make(chan struct{})
	)

	// hold the worker on the first item so the rest stay buffered
	assert.True(q.Dispatch(func() {
		<-block
	}))

	for i := 0; i < workCount; i++ {
		assert.True(q.Dispatch(func() {
			executed++
		}))
	}

	close(block)
	q.Stop()

	// Stop waited for the worker to exit, so executed is settled
	assert.Equal(workCount, executed)
}

func TestQueueDispatchAfterStop(t *testing.T) {
	assert := assert.New(t)
	q := NewQueue()
	q.Stop()

	assert.False(q.Dispatch(func() {
		assert.FailNow("work must not execute after Stop")
	}))
}

func TestQueueDispatchNil(t *testing.T) {
	assert := assert.New(t)
	q := NewQueue()
	defer q.Stop()

	assert.False(q.Dispatch(nil))
}

func TestQueuePanicRecovery(t *testing.T) {
	var (
		assert = assert.New(t)
		q      = NewQueue(WithQueueLogger(logging.NewTestLogger(nil, t)))
		done   = make(chan struct{})
	)

	defer q.Stop()

	assert.True(q.Dispatch(func() {
		panic("expected")
	}))

	// the queue must survive a panicking item and execute later work
	assert.True(q.Dispatch(func() {
		close(done)
	}))

	select {
	case <-done:
		// passing
	case <-time.After(5 * time.Second):
		assert.FailNow("the queue did not survive a panicking work item")
	}
}

func TestQueueOptionDefaults(t *testing.T) {
	assert := assert.New(t)
	q := NewQueue(WithQueueDepth(-1), WithQueueLogger(nil))
	defer q.Stop()

	assert.NotNil(q)
}
