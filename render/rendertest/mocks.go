// SPDX-FileCopyrightText: 2026 render-common contributors
// SPDX-License-Identifier: Apache-2.0

package rendertest

import (
	"github.com/stretchr/testify/mock"

	"github.com/rendertk/render-common/render"
)

// Mock is a stretchr mock for render.Source.  The OnXXX methods are
// conveniences for registering expected calls.
type Mock struct {
	mock.Mock
}

var _ render.Source = (*Mock)(nil)

func (m *Mock) RenderCount() uint64 {
	return m.Called().Get(0).(uint64)
}

func (m *Mock) OnRenderCount(v uint64) *mock.Call {
	return m.On("RenderCount").Return(v)
}

func (m *Mock) Subscribe(listener func()) render.Subscription {
	return m.Called(listener).Get(0).(render.Subscription)
}

func (m *Mock) OnSubscribe(s render.Subscription) *mock.Call {
	return m.On("Subscribe", mock.AnythingOfType("func()")).Return(s)
}

func (m *Mock) Dispatcher() render.Dispatcher {
	return m.Called().Get(0).(render.Dispatcher)
}

func (m *Mock) OnDispatcher(d render.Dispatcher) *mock.Call {
	return m.On("Dispatcher").Return(d)
}

func (m *Mock) Failed() <-chan struct{} {
	return m.Called().Get(0).(<-chan struct{})
}

func (m *Mock) OnFailed(c <-chan struct{}) *mock.Call {
	return m.On("Failed").Return(c)
}

func (m *Mock) Err() error {
	return m.Called().Error(0)
}

func (m *Mock) OnErr(err error) *mock.Call {
	return m.On("Err").Return(err)
}

// MockSubscription is a stretchr mock for the render.Subscription interface
type MockSubscription struct {
	mock.Mock
}

var _ render.Subscription = (*MockSubscription)(nil)

func (m *MockSubscription) Unsubscribe() {
	m.Called()
}

func (m *MockSubscription) OnUnsubscribe() *mock.Call {
	return m.On("Unsubscribe")
}

// MockDispatcher is a stretchr mock for the render.Dispatcher interface
type MockDispatcher struct {
	mock.Mock
}

var _ render.Dispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) Dispatch(work func()) bool {
	return m.Called(work).Bool(0)
}

// OnDispatch registers an expectation for any work item.  When accept is
// true, the work is also executed inline, which makes dispatched behavior
// synchronous and deterministic under test.
func (m *MockDispatcher) OnDispatch(accept bool) *mock.Call {
	c := m.On("Dispatch", mock.AnythingOfType("func()")).Return(accept)
	if accept {
		c.Run(func(arguments mock.Arguments) {
			arguments.Get(0).(func())()
		})
	}

	return c
}
