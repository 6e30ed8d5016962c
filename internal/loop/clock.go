package loop

import "time"

// Clock measures wall time between frames.
type Clock struct {
	now  func() time.Time
	last time.Time
	max  time.Duration
}

// NewClock creates a clock reading now. Deltas above limit are clamped;
// limit <= 0 disables the clamp.
func NewClock(now func() time.Time, limit time.Duration) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, max: limit}
}

// Delta returns the time since the previous call. The first call returns 0.
func (c *Clock) Delta() time.Duration {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		return 0
	}
	if c.max > 0 && d > c.max {
		return c.max
	}
	return d
}
