package platform

// CursorIcon is the shape of the OS pointer.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorPointer
	CursorText
	CursorGrab
	CursorGrabbing
	CursorNotAllowed
)

// Window is the native window the OS grants the process. The Loop's
// handler owns it; collaborators receive it as a borrowed reference and
// must not retain it past Suspended.
type Window interface {
	// InnerSize returns the drawable size in physical pixels.
	InnerSize() (width, height uint32)

	// ScaleFactor returns device pixels per logical unit.
	ScaleFactor() float64

	// RequestRedraw schedules one RedrawRequested event. Requests made
	// before the event is delivered are coalesced.
	RequestRedraw()

	// SetCursor sets the pointer icon. Drivers without a pointer ignore it.
	SetCursor(icon CursorIcon)

	// SetIMEAllowed enables or disables input-method events.
	SetIMEAllowed(allowed bool)

	// NativeHandle returns the display and window handles used to create
	// a GPU surface. On Android display is 0 and window is the
	// ANativeWindow pointer.
	NativeHandle() (display, window uintptr)
}
