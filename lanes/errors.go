package lanes

import "errors"

var (
	// ErrUnknownLane is returned when submitting to a lane that does not exist.
	ErrUnknownLane = errors.New("unknown lane")

	// ErrLimiterReleased is returned for jobs submitted to, or still queued
	// in, a released limiter.
	ErrLimiterReleased = errors.New("limiter released")
)
