package sim

import "time"

// TimerID identifies a scheduled callback. Zero is never issued.
type TimerID uint64

type timer struct {
	id     TimerID
	due    time.Duration
	period func() time.Duration // nil for one-shot timers
	fn     func()
	dead   bool
}

// Clock is a tick-driven scheduler. Time only moves when Advance is called,
// and callbacks run inside Advance on the caller's goroutine, in due order.
type Clock struct {
	now    time.Duration
	nextID TimerID
	timers []*timer
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the clock's elapsed time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// After schedules fn once, d from now.
func (c *Clock) After(d time.Duration, fn func()) TimerID {
	return c.add(&timer{due: c.now + d, fn: fn})
}

// Repeat schedules fn repeatedly. Each wait is drawn from period, including
// the first one, so the sequence is wait, fire, wait, fire...
func (c *Clock) Repeat(period func() time.Duration, fn func()) TimerID {
	return c.add(&timer{due: c.now + period(), period: period, fn: fn})
}

func (c *Clock) add(t *timer) TimerID {
	c.nextID++
	t.id = c.nextID
	c.timers = append(c.timers, t)
	return t.id
}

// Cancel stops a timer. A cancelled timer never fires, even if it is already
// due within the Advance call that is currently running.
// Returns false if the timer was unknown or already finished.
func (c *Clock) Cancel(id TimerID) bool {
	for _, t := range c.timers {
		if t.id == id && !t.dead {
			t.dead = true
			return true
		}
	}
	return false
}

// Pending reports whether the timer is still scheduled.
func (c *Clock) Pending(id TimerID) bool {
	for _, t := range c.timers {
		if t.id == id {
			return !t.dead
		}
	}
	return false
}

// Advance moves time forward by dt and fires every timer that comes due.
// Repeating timers can fire several times in one call if dt is long.
// Time never runs backwards: a negative dt counts as zero.
func (c *Clock) Advance(dt time.Duration) {
	target := c.now + max(dt, 0)
	for {
		t := c.earliest(target)
		if t == nil {
			break
		}
		c.now = t.due
		if t.period != nil {
			t.due += max(t.period(), time.Nanosecond)
		} else {
			t.dead = true
		}
		t.fn()
	}
	c.now = target
	c.compact()
}

// earliest returns the live timer with the smallest due time not after limit.
// Ties fire in scheduling order.
func (c *Clock) earliest(limit time.Duration) *timer {
	var best *timer
	for _, t := range c.timers {
		if t.dead || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}
