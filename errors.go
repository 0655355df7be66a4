package nativehost

import "errors"

var (
	// ErrStartup wraps failures to create the window, device or surface.
	// They end the loop.
	ErrStartup = errors.New("nativehost: startup failed")

	// ErrFatalFrame wraps unrecoverable frame failures such as device loss
	// or running out of GPU memory. They end the loop.
	ErrFatalFrame = errors.New("nativehost: fatal frame error")
)
