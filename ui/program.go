package ui

import (
	"image/color"
	"math"
)

// Message is a value produced by a widget and consumed by Program.Update.
type Message = any

// Program is the capability a UI program provides to the Host.
type Program interface {
	// Update applies msg to the program state.
	Update(msg Message) Command
	// View returns the widget tree for the current state.
	View() Element
	// BackgroundColor is the color the scene is cleared to.
	BackgroundColor() Color
}

// Snapshotter is implemented by programs whose state can be persisted
// across process restarts.
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(data []byte) error
}

// Clipboard is a platform text clipboard. Read reports false when the
// clipboard is empty or unavailable.
type Clipboard interface {
	Read() (string, bool)
	Write(s string)
}

// Platform actions understood by the native host.
const (
	ShowKeyboard = "showKeyboard"
	HideKeyboard = "hideKeyboard"
)

// Command is a side-effect request returned by Program.Update.
// The zero value is None.
type Command struct {
	action string
}

// None returns the empty command.
func None() Command { return Command{} }

// Action returns a command asking the embedder to perform the named
// platform action.
func Action(name string) Command { return Command{action: name} }

// IsKeyboard reports whether c shows or hides the soft keyboard.
func (c Command) IsKeyboard() bool {
	return c.action == ShowKeyboard || c.action == HideKeyboard
}

// IsNone reports whether c requests nothing.
func (c Command) IsNone() bool { return c.action == "" }

// Name returns the action name, or "" for None.
func (c Command) Name() string { return c.action }

func (c Command) String() string {
	if c.IsNone() {
		return "None"
	}
	return "Action(" + c.action + ")"
}

// Interaction is a hint for the pointer shape over the UI.
type Interaction uint8

const (
	Idle Interaction = iota
	Pointer
	Text
	Grab
	Grabbing
)

func (i Interaction) String() string {
	switch i {
	case Pointer:
		return "pointer"
	case Text:
		return "text"
	case Grab:
		return "grab"
	case Grabbing:
		return "grabbing"
	default:
		return "idle"
	}
}

// Color is a straight-alpha color with sRGB-encoded components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Transparent = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color { return Color{R: r, G: g, B: b, A: 1} }

// NRGBA converts c to 8-bit straight alpha.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Linear returns the components with the sRGB transfer function removed.
// Alpha is unchanged.
func (c Color) Linear() [4]float64 {
	return [4]float64{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B), float64(c.A)}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func srgbToLinear(v float32) float64 {
	c := float64(v)
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
