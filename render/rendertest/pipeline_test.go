// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package rendertest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rendertk/render-common/clock/clocktest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPipelineRender(t *testing.T) {
	var (
		assert = assert.New(t)
		p      = NewPipeline()

		notified int
	)

	defer p.Close()

	sub := p.Subscribe(func() {
		notified++
	})

	assert.Zero(p.RenderCount())

	p.RenderSync()
	p.RenderSync()
	assert.Equal(uint64(2), p.RenderCount())
	assert.Equal(2, notified)

	sub.Unsubscribe()
	sub.Unsubscribe()

	p.RenderSync()
	assert.Equal(uint64(3), p.RenderCount())
	assert.Equal(2, notified)
}

func TestPipelineUnsubscribeFromListener(t *testing.T) {
	var (
		assert = assert.New(t)
		p      = NewPipeline()

		notified int
	)

	defer p.Close()

	var sub interface{ Unsubscribe() }
	sub = p.Subscribe(func() {
		notified++
		sub.Unsubscribe()
	})

	p.RenderSync()
	p.RenderSync()
	assert.Equal(1, notified)
}

func TestPipelineFail(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		p        = NewPipeline()
		expected = errors.New("expected")
	)

	defer p.Close()

	assert.NoError(p.Err())

	select {
	case <-p.Failed():
		require.FailNow("Failed must not be signaled before Fail")
	default:
		// passing
	}

	p.Fail(expected)
	p.Fail(errors.New("ignored"))

	select {
	case <-p.Failed():
		// passing
	default:
		require.FailNow("Failed must be signaled after Fail")
	}

	assert.Equal(expected, p.Err())
}

func TestPipelineFailNil(t *testing.T) {
	assert := assert.New(t)
	p := NewPipeline()
	defer p.Close()

	p.Fail(nil)
	assert.Equal(ErrPipelineFailed, p.Err())
}

// TestPipelinePeriodicRender steps periodic-render mode through a mocked
// ticker: each tick must produce one render pass with notifications.
func TestPipelinePeriodicRender(t *testing.T) {
	const interval = 50 * time.Millisecond

	var (
		assert  = assert.New(t)
		require = require.New(t)

		cl     = new(clocktest.Mock)
		ticker = new(clocktest.MockTicker)
		ticks  = make(chan time.Time)

		notified = make(chan struct{}, 1)
	)

	cl.OnNewTicker(interval, ticker).Once()
	ticker.OnC((<-chan time.Time)(ticks))
	ticker.OnStop().Once()

	p := NewPipeline(
		WithRenderInterval(interval),
		WithPipelineClock(cl),
	)

	p.Subscribe(func() {
		notified <- struct{}{}
	})

	for i := 0; i < 2; i++ {
		ticks <- time.Now()

		select {
		case <-notified:
			// passing
		case <-time.After(5 * time.Second):
			require.FailNow("the periodic render did not notify")
		}
	}

	assert.Equal(uint64(2), p.RenderCount())

	// Close winds the ticker down before stopping the queue, idempotently
	p.Close()
	p.Close()
	cl.AssertExpectations(t)
	ticker.AssertExpectations(t)
}

func TestPipelineRenderAfterClose(t *testing.T) {
	assert := assert.New(t)
	p := NewPipeline()

	p.Subscribe(func() {
		assert.FailNow("listeners must not be notified after Close")
	})

	p.Close()
	p.Render()
	assert.Zero(p.RenderCount())
}
