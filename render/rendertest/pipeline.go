// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package rendertest

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/rendertk/render-common/clock"
	"github.com/rendertk/render-common/render"
)

// ErrPipelineFailed is the fatal error installed by Fail when the caller
// does not supply one.
var ErrPipelineFailed = errors.New("the render pipeline failed")

// Pipeline is an in-memory render.Source backed by a real render.Queue.
// Renders are triggered explicitly via Render, or periodically when
// WithRenderInterval is configured, and a fatal pipeline error is injected
// via Fail.  Pipeline is safe for concurrent use.
//
// Pipeline is exported, rather than kept in a _test.go file, because the
// test suites of frameworks embedding this module need the same fixture.
type Pipeline struct {
	queue        render.Queue
	queueOptions []render.QueueOption
	renders      atomic.Uint64

	clock    clock.Interface
	interval time.Duration
	closed   chan struct{}
	ticking  chan struct{}
	stopOnce sync.Once

	lock      sync.Mutex
	nextToken uint64
	listeners map[uint64]func()

	failOnce sync.Once
	failed   chan struct{}
	err      error
}

var _ render.Source = (*Pipeline)(nil)

// PipelineOption is a configuration option for a Pipeline.
type PipelineOption func(*Pipeline)

// WithRenderInterval enables periodic-render mode: the Pipeline renders by
// itself every interval until it is closed, simulating a component that
// re-renders on its own.  A nonpositive interval leaves periodic rendering
// off, which is the default.
func WithRenderInterval(interval time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.interval = interval
	}
}

// WithPipelineClock sets the clock whose ticker drives periodic-render
// mode, so tests can step it deterministically.  Passing nil selects the
// system clock.
func WithPipelineClock(cl clock.Interface) PipelineOption {
	return func(p *Pipeline) {
		if cl != nil {
			p.clock = cl
		} else {
			p.clock = clock.System()
		}
	}
}

// WithPipelineQueueOptions forwards options to the Pipeline's dispatch
// queue.
func WithPipelineQueueOptions(options ...render.QueueOption) PipelineOption {
	return func(p *Pipeline) {
		p.queueOptions = options
	}
}

// NewPipeline constructs a Pipeline with a freshly started dispatch queue.
// The caller must invoke Close when finished with it.
func NewPipeline(options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		clock:     clock.System(),
		closed:    make(chan struct{}),
		listeners: make(map[uint64]func()),
		failed:    make(chan struct{}),
	}

	for _, o := range options {
		o(p)
	}

	p.queue = render.NewQueue(p.queueOptions...)
	if p.interval > 0 {
		p.ticking = make(chan struct{})
		go p.tick()
	}

	return p
}

func (p *Pipeline) RenderCount() uint64 {
	return p.renders.Load()
}

func (p *Pipeline) Subscribe(listener func()) render.Subscription {
	p.lock.Lock()
	defer p.lock.Unlock()

	token := p.nextToken
	p.nextToken++
	p.listeners[token] = listener

	return &pipelineSubscription{pipeline: p, token: token}
}

func (p *Pipeline) Dispatcher() render.Dispatcher {
	return p.queue
}

func (p *Pipeline) Failed() <-chan struct{} {
	return p.failed
}

func (p *Pipeline) Err() error {
	select {
	case <-p.failed:
		return p.err

	default:
		return nil
	}
}

// Render simulates one render pass: on the dispatch queue, the render
// counter is advanced and every current listener is notified, in an
// arbitrary but serialized order.  Render returns without waiting for the
// notifications to execute.
func (p *Pipeline) Render() {
	p.queue.Dispatch(func() {
		p.renders.Inc()
		for _, listener := range p.snapshot() {
			listener()
		}
	})
}

// RenderSync is Render followed by a wait for the notifications to finish
// executing.  It must not be called from work running on the queue.
func (p *Pipeline) RenderSync() {
	p.Render()
	p.Flush()
}

// Flush blocks until all work dispatched before the call has executed.
func (p *Pipeline) Flush() {
	done := make(chan struct{})
	if p.queue.Dispatch(func() { close(done) }) {
		<-done
	}
}

// Fail injects a one-shot fatal pipeline error.  A nil err selects
// ErrPipelineFailed.  Calls after the first have no effect.
func (p *Pipeline) Fail(err error) {
	if err == nil {
		err = ErrPipelineFailed
	}

	p.failOnce.Do(func() {
		p.err = err
		close(p.failed)
	})
}

// Close stops periodic rendering, waits for it to wind down, and stops the
// dispatch queue.  Renders after Close are dropped.  Close is idempotent.
func (p *Pipeline) Close() {
	p.stopOnce.Do(func() {
		close(p.closed)
		if p.ticking != nil {
			<-p.ticking
		}

		p.queue.Stop()
	})
}

// tick drives periodic-render mode until Close.
func (p *Pipeline) tick() {
	defer close(p.ticking)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			p.Render()

		case <-p.closed:
			return
		}
	}
}

// snapshot copies the listener set so that listeners may unsubscribe, or new
// subscribers register, while a notification pass is in flight.
func (p *Pipeline) snapshot() []func() {
	p.lock.Lock()
	defer p.lock.Unlock()

	listeners := make([]func(), 0, len(p.listeners))
	for _, listener := range p.listeners {
		listeners = append(listeners, listener)
	}

	return listeners
}

type pipelineSubscription struct {
	pipeline *Pipeline
	token    uint64
	once     sync.Once
}

func (s *pipelineSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.pipeline.lock.Lock()
		defer s.pipeline.lock.Unlock()
		delete(s.pipeline.listeners, s.token)
	})
}
