package sim

import (
	"testing"
	"time"
)

func TestClockFiresInDueOrder(t *testing.T) {
	c := NewClock()
	var got []string

	c.After(30*time.Millisecond, func() { got = append(got, "c") })
	c.After(10*time.Millisecond, func() { got = append(got, "a") })
	c.After(20*time.Millisecond, func() { got = append(got, "b") })
	c.After(20*time.Millisecond, func() { got = append(got, "b2") })

	c.Advance(25 * time.Millisecond)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "b2" {
		t.Fatalf("after 25ms fired %v, want [a b b2]", got)
	}

	c.Advance(5 * time.Millisecond)
	if len(got) != 4 || got[3] != "c" {
		t.Fatalf("after 30ms fired %v, want c last", got)
	}

	if c.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", c.Now())
	}
}

func TestClockCancel(t *testing.T) {
	c := NewClock()
	fired := false
	id := c.After(time.Second, func() { fired = true })

	if !c.Pending(id) {
		t.Fatal("timer should be pending after After")
	}
	if !c.Cancel(id) {
		t.Fatal("Cancel should report true for a live timer")
	}
	if c.Cancel(id) {
		t.Error("second Cancel should report false")
	}

	c.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if c.Pending(id) {
		t.Error("cancelled timer still pending")
	}
}

func TestClockCancelWithinSameAdvance(t *testing.T) {
	c := NewClock()
	var second TimerID
	fired := false

	c.After(10*time.Millisecond, func() { c.Cancel(second) })
	second = c.After(20*time.Millisecond, func() { fired = true })

	// Both are due inside this one call
	c.Advance(time.Second)
	if fired {
		t.Error("timer cancelled by an earlier callback in the same Advance still fired")
	}
}

func TestClockRepeat(t *testing.T) {
	c := NewClock()
	count := 0
	id := c.Repeat(func() time.Duration { return 100 * time.Millisecond }, func() { count++ })

	c.Advance(99 * time.Millisecond)
	if count != 0 {
		t.Fatalf("repeat fired before its first period: %d", count)
	}

	c.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d after first period, want 1", count)
	}

	// A long step fires several times
	c.Advance(350 * time.Millisecond)
	if count != 4 {
		t.Fatalf("count = %d after 450ms, want 4", count)
	}

	c.Cancel(id)
	c.Advance(time.Second)
	if count != 4 {
		t.Errorf("repeat fired after cancel: %d", count)
	}
}

func TestClockOneShotFinishes(t *testing.T) {
	c := NewClock()
	id := c.After(time.Millisecond, func() {})
	c.Advance(time.Millisecond)

	if c.Pending(id) {
		t.Error("one-shot timer should not be pending after firing")
	}
	if c.Cancel(id) {
		t.Error("Cancel of a finished timer should report false")
	}
}

func TestClockIgnoresNegativeAdvance(t *testing.T) {
	c := NewClock()
	fired := 0
	c.After(time.Second, func() { fired++ })

	c.Advance(time.Second)
	c.Advance(-500 * time.Millisecond)

	if c.Now() != time.Second {
		t.Errorf("Now() = %v after a negative advance, want 1s", c.Now())
	}
	if fired != 1 {
		t.Errorf("timer fired %d times, want 1", fired)
	}

	zero := 0
	c.After(0, func() { zero++ })
	c.Advance(0)
	if zero != 1 {
		t.Error("zero-delay timer should fire on a zero advance")
	}
}
