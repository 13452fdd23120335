package hub

import "errors"

var (
	// ErrStopped is returned when broadcasting on a hub that has shut down.
	ErrStopped = errors.New("hub: stopped")
)
