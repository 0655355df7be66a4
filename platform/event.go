package platform

import "fmt"

// Event is a raw event produced by a Driver.
type Event interface {
	isEvent()
}

// Resumed is sent when the OS grants (or re-grants) the native window.
type Resumed struct{}

// Suspended is sent when the OS revokes the native window. All GPU state
// bound to it must be dropped before the handler returns.
type Suspended struct{}

// CloseRequested is sent when the activity is finishing.
type CloseRequested struct{}

// Resized carries the new physical size of the window.
type Resized struct {
	Width, Height uint32
}

// ScaleFactorChanged carries a new device-pixels-per-logical-unit ratio.
type ScaleFactorChanged struct {
	Scale float64
}

// RedrawRequested is sent once per Window.RequestRedraw, coalesced.
type RedrawRequested struct{}

// Focused reports a window focus change.
type Focused struct {
	Focused bool
}

// CursorMoved carries a pointer position in physical pixels.
type CursorMoved struct {
	X, Y float64
}

// CursorLeft is sent when the pointer leaves the window.
type CursorLeft struct{}

// MouseInput is a mouse button press or release.
type MouseInput struct {
	Button MouseButton
	State  ElementState
}

// MouseWheel is a scroll delta in lines.
type MouseWheel struct {
	DX, DY float64
}

// Touch is a single touch point update in physical pixels.
type Touch struct {
	ID    uint64
	Phase TouchPhase
	X, Y  float64
}

// KeyboardInput is a discrete key press or release. Text is the
// character produced by the key, if any.
type KeyboardInput struct {
	Code   KeyCode
	State  ElementState
	Text   string
	Repeat bool
}

// ModifiersChanged replaces the active modifier set.
type ModifiersChanged struct {
	Modifiers Modifiers
}

// Ime is an input-method event. The host logs these and does not act on
// them further.
type Ime struct {
	Kind ImeKind
	Text string
}

// DeviceEvent is raw device input with no window equivalent.
type DeviceEvent struct {
	Device int32
	Source int32
}

func (Resumed) isEvent()            {}
func (Suspended) isEvent()          {}
func (CloseRequested) isEvent()     {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (RedrawRequested) isEvent()    {}
func (Focused) isEvent()            {}
func (CursorMoved) isEvent()        {}
func (CursorLeft) isEvent()         {}
func (MouseInput) isEvent()         {}
func (MouseWheel) isEvent()         {}
func (Touch) isEvent()              {}
func (KeyboardInput) isEvent()      {}
func (ModifiersChanged) isEvent()   {}
func (Ime) isEvent()                {}
func (DeviceEvent) isEvent()        {}

// ElementState is the state of a key or button.
type ElementState uint8

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// TouchPhase is the phase of a touch point.
type TouchPhase uint8

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStarted:
		return "started"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("TouchPhase(%d)", uint8(p))
	}
}

// ImeKind is the kind of an Ime event.
type ImeKind uint8

const (
	ImeEnabled ImeKind = iota
	ImePreedit
	ImeCommit
	ImeDisabled
)
