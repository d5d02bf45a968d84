package session

import (
	"sync"
	"time"
)

// Timer drives one exercise countdown at one-second granularity. Start
// always cancels the previous countdown first, so two runs can never
// overlap; Cancel is idempotent and safe after natural expiry.
type Timer struct {
	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
}

func NewTimer() *Timer {
	return &Timer{interval: time.Second}
}

// NewTimerWithInterval shortens the tick interval. Tests use this to
// run countdowns in milliseconds.
func NewTimerWithInterval(interval time.Duration) *Timer {
	return &Timer{interval: interval}
}

// Start resets the countdown to durationSeconds. onTick receives the
// remaining seconds after each tick; onElapsed fires exactly once when
// the countdown reaches zero, after which the timer stops on its own.
func (t *Timer) Start(durationSeconds int, onTick func(remaining int), onElapsed func()) {
	t.mu.Lock()
	t.cancelLocked()
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go t.run(durationSeconds, stop, onTick, onElapsed)
}

func (t *Timer) Cancel() {
	t.mu.Lock()
	t.cancelLocked()
	t.mu.Unlock()
}

func (t *Timer) cancelLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) run(durationSeconds int, stop chan struct{}, onTick func(remaining int), onElapsed func()) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	remaining := durationSeconds
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				t.mu.Lock()
				if t.stop == stop {
					t.stop = nil
				}
				t.mu.Unlock()
				onElapsed()
				return
			}
			if onTick != nil {
				onTick(remaining)
			}
		}
	}
}
