package nativehost

import "fmt"

// State is the lifecycle state of a Host.
type State uint8

const (
	// Uninitialized is the state before the first Resumed.
	Uninitialized State = iota
	// Active means the window and surface are live.
	Active
	// Suspended means the OS revoked the window; GPU state is dropped.
	Suspended
	// Exiting is terminal.
	Exiting
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Active:
		return "Active"
	case Suspended:
		return "Suspended"
	case Exiting:
		return "Exiting"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
