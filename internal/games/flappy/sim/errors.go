package sim

import "errors"

var (
	// ErrInvalidConfig is returned by NewScene when the configuration
	// cannot produce a playable world.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrNoRoomForGap means the requested gap does not fit in the space
	// between the ground and the top of the world. The spawn is rejected.
	ErrNoRoomForGap = errors.New("sim: gap does not fit in available height")
)
