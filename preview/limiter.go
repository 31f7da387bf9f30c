package preview

import "time"

// FrameLimiter paces frames to a fixed rate.
type FrameLimiter struct {
	interval time.Duration
	next     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFrameLimiter returns a limiter for fps frames per second. fps <= 0
// disables limiting.
func NewFrameLimiter(fps int) *FrameLimiter {
	l := &FrameLimiter{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

// Wait blocks until the next frame is due.
func (l *FrameLimiter) Wait() {
	if l.interval == 0 {
		return
	}
	now := l.now()
	if d := l.next.Sub(now); d > 0 {
		l.sleep(d)
		now = l.next
	}
	l.advance(now)
}

// Allow reports whether a frame is due without blocking, and takes the slot
// if it is.
func (l *FrameLimiter) Allow() bool {
	if l.interval == 0 {
		return true
	}
	now := l.now()
	if now.Before(l.next) {
		return false
	}
	l.advance(now)
	return true
}

// advance schedules the next slot one interval after now's slot. A limiter
// that fell behind does not try to catch up.
func (l *FrameLimiter) advance(now time.Time) {
	l.next = l.next.Add(l.interval)
	if l.next.Before(now) {
		l.next = now.Add(l.interval)
	}
}
