package web

import "errors"

var (
	// ErrNoPort is returned when starting a server without a port.
	ErrNoPort = errors.New("web: server port required")
)
