package directory

import (
	"sync"
	"time"
)

// throttle ensures a minimum interval between successive reloads.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// allow reports whether an operation may run now and, if so, books the next
// slot. Callers that are refused reschedule themselves.
func (t *throttle) allow(now time.Time) (bool, time.Duration) {
	if t == nil || t.interval <= 0 {
		return true, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if wait := t.next.Sub(now); wait > 0 {
		return false, wait
	}
	t.next = now.Add(t.interval)
	return true, 0
}
