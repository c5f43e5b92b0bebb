package clock

import "time"

// Interface is the subset of the time package used by this module, abstracted
// so that timer-driven behavior can be made deterministic under test.
type Interface interface {
	Now() time.Time
	NewTimer(time.Duration) Timer
	NewTicker(time.Duration) Ticker
}

// Timer is a one-shot firing, as produced by time.NewTimer.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Ticker is a periodic firing, as produced by time.NewTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// System returns a clock backed by the time package.  The returned instance
// is stateless and safe for concurrent use.
func System() Interface {
	return systemClock{}
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTimer struct {
	*time.Timer
}

func (st systemTimer) C() <-chan time.Time {
	return st.Timer.C
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}
