package sim

// Status is the game's top-level state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusOver
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// StatusObserver is called after every status assignment.
type StatusObserver func(old, new Status)

// statusCell holds the authoritative status. Every Set notifies observers,
// including assignments that do not change the value.
type statusCell struct {
	value     Status
	observers []StatusObserver
}

func (c *statusCell) Get() Status {
	return c.value
}

func (c *statusCell) Set(s Status) {
	old := c.value
	c.value = s
	for _, fn := range c.observers {
		fn(old, s)
	}
}

func (c *statusCell) Observe(fn StatusObserver) {
	c.observers = append(c.observers, fn)
}
