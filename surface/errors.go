// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

var (
	// ErrOutOfMemory means the device ran out of memory. Fatal.
	ErrOutOfMemory = errors.New("surface: out of memory")
	// ErrDeviceLost means the device is gone. Fatal.
	ErrDeviceLost = errors.New("surface: device lost")

	// ErrOutdated means the surface no longer matches the window and must
	// be reconfigured.
	ErrOutdated = errors.New("surface: outdated")
	// ErrLost means the surface was lost and must be reconfigured.
	ErrLost = errors.New("surface: lost")
	// ErrTimeout means no frame became available in time.
	ErrTimeout = errors.New("surface: acquire timeout")

	// ErrNotConfigured is returned when acquiring from a surface that was
	// never configured.
	ErrNotConfigured = errors.New("surface: not configured")
	// ErrZeroSize is returned when configuring with a zero dimension.
	ErrZeroSize = errors.New("surface: zero size")
	// ErrNoAdapter is returned when no adapter can present to the window.
	ErrNoAdapter = errors.New("surface: no suitable adapter")
	// ErrNoFormat is returned when the surface reports no formats.
	ErrNoFormat = errors.New("surface: no supported format")
	// ErrReleased is returned by a context used after Release.
	ErrReleased = errors.New("surface: context released")
)

// IsFatal reports whether err ends the process: out of memory or device
// loss.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrDeviceLost)
}

// NeedsReconfigure reports whether err is resolved by reconfiguring the
// surface before the next acquire.
func NeedsReconfigure(err error) bool {
	return errors.Is(err, ErrOutdated) || errors.Is(err, ErrLost)
}
