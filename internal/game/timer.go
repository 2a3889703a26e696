package game

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RoundTimer counts down from a configured duration, emitting the remaining
// seconds on every tick and firing an expiry callback exactly once when the
// countdown reaches zero. Remaining time is always computed from the captured
// start instant, not by accumulating tick deltas, so scheduling jitter never
// drifts the clock.
type RoundTimer struct {
	clock clockwork.Clock
	tick  time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func NewRoundTimer(clock clockwork.Clock, tick time.Duration) *RoundTimer {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	return &RoundTimer{clock: clock, tick: tick}
}

// Start resets the countdown to duration and begins ticking. Any previous
// countdown on this timer is cancelled first; a session holds at most one
// active round timer.
func (t *RoundTimer) Start(duration time.Duration, onTick func(remaining float64), onExpire func()) {
	t.mu.Lock()
	if t.running {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	t.running = true
	t.mu.Unlock()

	start := t.clock.Now()
	go func() {
		ticker := t.clock.NewTicker(t.tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				select {
				case <-stop:
					return
				default:
				}
				remaining := (duration - t.clock.Since(start)).Seconds()
				if remaining < 0 {
					remaining = 0
				}
				if onTick != nil {
					onTick(remaining)
				}
				if remaining <= 0 {
					t.mu.Lock()
					if t.stop == stop {
						t.running = false
					}
					t.mu.Unlock()
					if onExpire != nil {
						onExpire()
					}
					return
				}
			}
		}
	}()
}

// Cancel stops the countdown immediately; no further ticks or expiry are
// emitted. Callers must cancel in the same step that records an early answer
// so a stale expiry cannot resolve the round a second time.
func (t *RoundTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		close(t.stop)
		t.running = false
	}
}

// Running reports whether a countdown is currently active.
func (t *RoundTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
