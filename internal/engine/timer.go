package engine

import (
	"sync"
	"time"

	"school-trivia/internal/domain"
)

// Ticker delivers the one-second beats of a countdown.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

// Dispatcher runs timer callbacks. The engine passes one that takes its own
// lock, which serializes callbacks with Cancel/Start issued under that lock.
type Dispatcher func(fn func())

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker is the production TickerFactory.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Timer is a restartable single-shot countdown with one-second resolution.
// At most one countdown is active; starting a new one cancels the previous.
type Timer struct {
	newTicker TickerFactory
	dispatch  Dispatcher

	mu  sync.Mutex
	run *timerRun
}

type timerRun struct {
	remaining int
	onTick    func(remaining int)
	onExpire  func()
	stop      chan struct{}
}

// NewTimer returns a timer. nil arguments select time.Ticker and direct calls.
func NewTimer(newTicker TickerFactory, dispatch Dispatcher) *Timer {
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Timer{newTicker: newTicker, dispatch: dispatch}
}

// Start counts down from seconds to 0, calling onTick with every new remaining
// value and onExpire once when 0 is reached. Non-positive durations expire on
// the first tick.
func (t *Timer) Start(seconds int, onTick func(remaining int), onExpire func()) {
	if onTick == nil {
		onTick = func(int) {}
	}
	if onExpire == nil {
		onExpire = func() {}
	}
	r := &timerRun{
		remaining: seconds,
		onTick:    onTick,
		onExpire:  onExpire,
		stop:      make(chan struct{}),
	}

	t.mu.Lock()
	t.stopLocked()
	t.run = r
	ticker := t.newTicker(time.Second)
	t.mu.Unlock()

	go t.loop(r, ticker)
}

// Restart is Cancel followed by Start.
func (t *Timer) Restart(seconds int, onTick func(remaining int), onExpire func()) {
	t.Cancel()
	t.Start(seconds, onTick, onExpire)
}

// Cancel stops the active countdown. It is idempotent and safe after expiry.
func (t *Timer) Cancel() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
}

// Active reports whether a countdown is running.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run != nil
}

// Remaining returns the seconds left on the active countdown, or 0.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.run == nil {
		return 0
	}
	return t.run.remaining
}

func (t *Timer) stopLocked() {
	if t.run == nil {
		return
	}
	close(t.run.stop)
	t.run = nil
}

func (t *Timer) loop(r *timerRun, ticker Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C():
			finished := false
			t.dispatch(func() { finished = t.tick(r) })
			if finished {
				return
			}
		}
	}
}

// tick advances r by one second. It returns true once r is no longer current.
func (t *Timer) tick(r *timerRun) bool {
	t.mu.Lock()
	if t.run != r {
		t.mu.Unlock()
		return true
	}
	r.remaining--
	if r.remaining < 0 {
		r.remaining = 0
	}
	remaining := r.remaining
	expired := remaining == 0
	if expired {
		t.stopLocked()
	}
	t.mu.Unlock()

	r.onTick(remaining)
	if expired {
		r.onExpire()
	}
	return expired
}

// Thresholds classify remaining time. A zero threshold is disabled.
type Thresholds struct {
	Warning int
	Danger  int
}

// Classify returns the display level for remaining seconds.
func (th Thresholds) Classify(remaining int) domain.TimerLevel {
	switch {
	case th.Danger > 0 && remaining <= th.Danger:
		return domain.TimerDanger
	case th.Warning > 0 && remaining <= th.Warning:
		return domain.TimerWarning
	}
	return domain.TimerNormal
}
